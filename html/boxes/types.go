package boxes

import pr "github.com/lherbaut/boxtree/css/properties"

// BoxType identifies a box kind. Concrete kinds are returned by
// Box.Type(); the trailing values are categories only used with
// IsInstance.
type BoxType uint8

const (
	invalidType BoxType = iota

	BlockT
	InlineT
	InlineBlockT
	TextT
	LineT
	BlockReplacedT
	InlineReplacedT
	TableT
	InlineTableT
	TableRowGroupT
	TableRowT
	TableColumnGroupT
	TableColumnT
	TableCellT
	TableCaptionT

	// categories
	BlockLevelT
	BlockContainerT
	InlineLevelT
	ParentT
	ReplacedT
)

func (b *BlockBox) Type() BoxType            { return BlockT }
func (b *LineBox) Type() BoxType             { return LineT }
func (b *InlineBox) Type() BoxType           { return InlineT }
func (b *TextBox) Type() BoxType             { return TextT }
func (b *InlineBlockBox) Type() BoxType      { return InlineBlockT }
func (b *BlockReplacedBox) Type() BoxType    { return BlockReplacedT }
func (b *InlineReplacedBox) Type() BoxType   { return InlineReplacedT }
func (b *TableBox) Type() BoxType            { return TableT }
func (b *InlineTableBox) Type() BoxType      { return InlineTableT }
func (b *TableRowGroupBox) Type() BoxType    { return TableRowGroupT }
func (b *TableRowBox) Type() BoxType         { return TableRowT }
func (b *TableColumnGroupBox) Type() BoxType { return TableColumnGroupT }
func (b *TableColumnBox) Type() BoxType      { return TableColumnT }
func (b *TableCellBox) Type() BoxType        { return TableCellT }
func (b *TableCaptionBox) Type() BoxType     { return TableCaptionT }

// IsInstance reports whether the box belongs to the kind (or category) `t`.
// Caption boxes are blocks, inline tables are tables.
func (t BoxType) IsInstance(box Box) bool {
	switch t {
	case BlockT:
		switch box.(type) {
		case *BlockBox, *TableCaptionBox:
			return true
		}
	case InlineT:
		_, is := box.(*InlineBox)
		return is
	case InlineBlockT:
		_, is := box.(*InlineBlockBox)
		return is
	case TextT:
		_, is := box.(*TextBox)
		return is
	case LineT:
		_, is := box.(*LineBox)
		return is
	case BlockReplacedT:
		_, is := box.(*BlockReplacedBox)
		return is
	case InlineReplacedT:
		_, is := box.(*InlineReplacedBox)
		return is
	case TableT:
		_, is := box.(TableBoxITF)
		return is
	case InlineTableT:
		_, is := box.(*InlineTableBox)
		return is
	case TableRowGroupT:
		_, is := box.(*TableRowGroupBox)
		return is
	case TableRowT:
		_, is := box.(*TableRowBox)
		return is
	case TableColumnGroupT:
		_, is := box.(*TableColumnGroupBox)
		return is
	case TableColumnT:
		_, is := box.(*TableColumnBox)
		return is
	case TableCellT:
		_, is := box.(*TableCellBox)
		return is
	case TableCaptionT:
		_, is := box.(*TableCaptionBox)
		return is
	case BlockLevelT:
		switch box.(type) {
		case *BlockBox, *BlockReplacedBox, *TableBox, *InlineTableBox, *TableCaptionBox:
			return true
		}
	case BlockContainerT:
		switch box.(type) {
		case *BlockBox, *InlineBlockBox, *TableCellBox, *TableCaptionBox:
			return true
		}
	case InlineLevelT:
		switch box.(type) {
		case *InlineBox, *TextBox, *InlineBlockBox, *InlineReplacedBox:
			return true
		}
	case ReplacedT:
		switch box.(type) {
		case *BlockReplacedBox, *InlineReplacedBox:
			return true
		}
	case ParentT:
		switch box.(type) {
		case *TextBox, *BlockReplacedBox, *InlineReplacedBox:
			return false
		}
		return true
	}
	return false
}

func (t BoxType) String() string {
	switch t {
	case BlockT:
		return "BlockBox"
	case InlineT:
		return "InlineBox"
	case InlineBlockT:
		return "InlineBlockBox"
	case TextT:
		return "TextBox"
	case LineT:
		return "LineBox"
	case BlockReplacedT:
		return "BlockReplacedBox"
	case InlineReplacedT:
		return "InlineReplacedBox"
	case TableT:
		return "TableBox"
	case InlineTableT:
		return "InlineTableBox"
	case TableRowGroupT:
		return "TableRowGroupBox"
	case TableRowT:
		return "TableRowBox"
	case TableColumnGroupT:
		return "TableColumnGroupBox"
	case TableColumnT:
		return "TableColumnBox"
	case TableCellT:
		return "TableCellBox"
	case TableCaptionT:
		return "TableCaptionBox"
	}
	return "<invalid box type>"
}

// display returns the display keyword driving the anonymous style for a
// synthesized box of this kind.
func (t BoxType) display() pr.Display {
	switch t {
	case BlockT:
		return "block"
	case InlineBlockT:
		return "inline-block"
	case TableT:
		return "table"
	case InlineTableT:
		return "inline-table"
	case TableRowGroupT:
		return "table-row-group"
	case TableRowT:
		return "table-row"
	case TableColumnGroupT:
		return "table-column-group"
	case TableColumnT:
		return "table-column"
	case TableCellT:
		return "table-cell"
	case TableCaptionT:
		return "table-caption"
	default:
		return "inline"
	}
}

// AnonymousFrom creates an anonymous box of the given concrete kind, with
// a style derived from the parent.
func AnonymousFrom(parent Box, t BoxType, children []Box) Box {
	parentBox := parent.Box()
	style := pr.Anonymous(parentBox.Style, t.display())
	var box Box
	switch t {
	case BlockT:
		box = NewBlockBox(style, parentBox.Element, parentBox.PseudoType, children)
	case LineT:
		box = NewLineBox(style, parentBox.Element, parentBox.PseudoType, children)
	case InlineT:
		box = NewInlineBox(style, parentBox.Element, parentBox.PseudoType, children)
	case InlineBlockT:
		box = NewInlineBlockBox(style, parentBox.Element, parentBox.PseudoType, children)
	case TableT:
		box = NewTableBox(style, parentBox.Element, parentBox.PseudoType, children)
	case InlineTableT:
		box = NewInlineTableBox(style, parentBox.Element, parentBox.PseudoType, children)
	case TableRowGroupT:
		box = NewTableRowGroupBox(style, parentBox.Element, parentBox.PseudoType, children)
	case TableRowT:
		box = NewTableRowBox(style, parentBox.Element, parentBox.PseudoType, children)
	case TableColumnGroupT:
		box = NewTableColumnGroupBox(style, parentBox.Element, parentBox.PseudoType, children)
	case TableColumnT:
		box = NewTableColumnBox(style, parentBox.Element, parentBox.PseudoType, children)
	case TableCellT:
		box = NewTableCellBox(style, parentBox.Element, parentBox.PseudoType, children)
	case TableCaptionT:
		box = NewTableCaptionBox(style, parentBox.Element, parentBox.PseudoType, children)
	default:
		panic("cannot create anonymous box of type " + t.String())
	}
	fields := box.Box()
	fields.IsAnonymous = true
	if t == TableCellT {
		// spans come from markup; the wrapped element is not a cell
		fields.Colspan, fields.Rowspan = 1, 1
	}
	return box
}

// isProperParent reports whether `parentType` is a proper parent for the
// proper-table-child `child` (CSS 2.1 §17.2.1).
func isProperParent(child Box, parentType BoxType) bool {
	switch child.(type) {
	case *TableRowGroupBox, *TableColumnGroupBox, *TableCaptionBox:
		return parentType == TableT || parentType == InlineTableT
	case *TableRowBox:
		return parentType == TableT || parentType == InlineTableT ||
			parentType == TableRowGroupT
	case *TableColumnBox:
		return parentType == TableT || parentType == InlineTableT ||
			parentType == TableColumnGroupT
	}
	return false
}
