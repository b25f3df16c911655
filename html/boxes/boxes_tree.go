// Package boxes turns a styled element tree into the box tree expected by
// the visual formatting model: it generates content for pseudo-elements and
// markers, repairs table markup with anonymous boxes, resolves table grid
// coordinates and collapsed borders, and splits inline content around
// block-level content.
package boxes

import (
	"fmt"
	"strconv"
	"strings"

	pr "github.com/lherbaut/boxtree/css/properties"
	"github.com/lherbaut/boxtree/images"
	"github.com/lherbaut/boxtree/utils"
	"golang.org/x/net/html"
)

// Box is a node in the formatting structure.
type Box interface {
	Box() *BoxFields
	Copy() Box
	Type() BoxType
}

// BoxFields is the data common to all box kinds.
type BoxFields struct {
	// Style is the computed style of the box. Anonymous boxes get a
	// derived style: inherited properties from the parent, initial
	// values for the others.
	Style pr.Properties

	// Element is the source element, also kept for anonymous boxes
	// (pointing to the closest ancestor element, for diagnostics).
	Element    *html.Node
	PseudoType string

	// Children are exclusively owned by the box; rewrite passes replace
	// the whole list, never mutate it element by element.
	Children []Box

	// IsAnonymous is true for boxes without a directly corresponding
	// element, synthesized to satisfy structural rules.
	IsAnonymous bool

	IsTableWrapper bool

	// OutsideListMarker is the marker box of a list item with
	// list-style-position: outside, laid out out of flow.
	OutsideListMarker Box

	// BookmarkLabel is the resolved text for document outline entries.
	BookmarkLabel string

	// table cell position and spans
	GridX   int
	Colspan int
	Rowspan int

	// column (group) span
	Span int

	IsHeader bool
	IsFooter bool

	// UsedBorders holds the transparent substitute borders written by the
	// collapsed-border resolution: each side is half the resolved edge
	// width, so two adjacent boxes sum to the full width. Indexed by
	// pr.Side. The declared style is left untouched.
	UsedBorders [4]pr.Fl

	properTableChild       bool
	internalTableOrCaption bool
	tabularContainer       bool

	elementTag string
}

func newBoxFields(style pr.Properties, element *html.Node, pseudoType string, children []Box) BoxFields {
	tag := utils.AsHTMLNode(element).ElementTag()
	if pseudoType != "" {
		tag += "::" + pseudoType
	}
	return BoxFields{
		Style: style, Element: element, PseudoType: pseudoType,
		Children: children, elementTag: tag,
		Colspan: 1, Rowspan: 1, Span: 1,
	}
}

// Box implements the Box interface (promoted on every concrete kind).
func (b *BoxFields) Box() *BoxFields { return b }

// ElementTag returns the tag of the source element, with the pseudo-element
// suffix (as in "p::before") when applicable.
func (b *BoxFields) ElementTag() string { return b.elementTag }

func (b *BoxFields) IsFloated() bool { return b.Style.GetFloat() != "none" }

func (b *BoxFields) IsAbsolutelyPositioned() bool {
	pos := b.Style.GetPosition()
	return pos == "absolute" || pos == "fixed"
}

// IsInNormalFlow reports whether the box is neither floated nor
// absolutely positioned.
func (b *BoxFields) IsInNormalFlow() bool {
	return !b.IsFloated() && !b.IsAbsolutelyPositioned()
}

type BlockBox struct {
	BoxFields
}

type LineBox struct {
	BoxFields
}

type InlineBox struct {
	BoxFields
}

type TextBox struct {
	BoxFields

	Text string
}

type InlineBlockBox struct {
	BoxFields
}

type ReplacedBox struct {
	BoxFields

	Replacement images.Image
}

type BlockReplacedBox struct {
	ReplacedBox
}

type InlineReplacedBox struct {
	ReplacedBox
}

type TableBox struct {
	BoxFields

	ColumnGroups        []*TableColumnGroupBox
	CollapsedBorderGrid BorderGrids
}

type InlineTableBox struct {
	TableBox
}

type TableRowGroupBox struct {
	BoxFields
}

type TableRowBox struct {
	BoxFields
}

type TableColumnGroupBox struct {
	BoxFields
}

type TableColumnBox struct {
	BoxFields
}

type TableCellBox struct {
	BoxFields
}

type TableCaptionBox struct {
	BlockBox
}

func NewBlockBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *BlockBox {
	out := BlockBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	return &out
}

func NewLineBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *LineBox {
	out := LineBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	return &out
}

func NewInlineBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *InlineBox {
	out := InlineBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	return &out
}

func NewTextBox(style pr.Properties, element *html.Node, pseudoType string, text string) TextBox {
	if len(text) == 0 {
		panic("NewTextBox called with empty text")
	}
	out := TextBox{BoxFields: newBoxFields(style, element, pseudoType, nil), Text: text}
	return out
}

// TextBoxAnonymousFrom creates a text box with an anonymous style derived
// from the parent.
func TextBoxAnonymousFrom(parent Box, text string) *TextBox {
	parentBox := parent.Box()
	style := pr.Anonymous(parentBox.Style, "inline")
	out := NewTextBox(style, parentBox.Element, parentBox.PseudoType, text)
	out.IsAnonymous = true
	return &out
}

// CopyWithText returns a new TextBox identical to this one except for the text.
func (b TextBox) CopyWithText(text string) *TextBox {
	if len(text) == 0 {
		panic("empty text")
	}
	newBox := b
	newBox.Text = text
	return &newBox
}

func NewInlineBlockBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *InlineBlockBox {
	out := InlineBlockBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	return &out
}

func NewReplacedBox(style pr.Properties, element *html.Node, pseudoType string, replacement images.Image) ReplacedBox {
	out := ReplacedBox{BoxFields: newBoxFields(style, element, pseudoType, nil)}
	out.Replacement = replacement
	return out
}

func NewBlockReplacedBox(style pr.Properties, element *html.Node, pseudoType string, replacement images.Image) BlockReplacedBox {
	return BlockReplacedBox{ReplacedBox: NewReplacedBox(style, element, pseudoType, replacement)}
}

func NewInlineReplacedBox(style pr.Properties, element *html.Node, pseudoType string, replacement images.Image) InlineReplacedBox {
	return InlineReplacedBox{ReplacedBox: NewReplacedBox(style, element, pseudoType, replacement)}
}

// TableBoxITF is implemented by tables and inline tables.
type TableBoxITF interface {
	Box
	Table() *TableBox
}

func NewTableBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *TableBox {
	out := TableBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	out.tabularContainer = true
	return &out
}

// Table implements TableBoxITF.
func (b *TableBox) Table() *TableBox { return b }

func NewInlineTableBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *InlineTableBox {
	out := InlineTableBox{TableBox: *NewTableBox(style, element, pseudoType, children)}
	return &out
}

func NewTableRowGroupBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *TableRowGroupBox {
	out := TableRowGroupBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	out.properTableChild = true
	out.internalTableOrCaption = true
	out.tabularContainer = true
	return &out
}

func NewTableRowBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *TableRowBox {
	out := TableRowBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	out.properTableChild = true
	out.internalTableOrCaption = true
	out.tabularContainer = true
	return &out
}

func NewTableColumnGroupBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *TableColumnGroupBox {
	out := TableColumnGroupBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	out.properTableChild = true
	out.internalTableOrCaption = true
	return &out
}

func NewTableColumnBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *TableColumnBox {
	out := TableColumnBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	out.properTableChild = true
	out.internalTableOrCaption = true
	return &out
}

// Read an integer attribute from the HTML element.
// If it is invalid, it defaults to 1.
func integerAttribute(attr string, minimum int) int {
	value := strings.TrimSpace(attr)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 1
	}
	if intValue < minimum {
		intValue = minimum
	}
	return intValue
}

func NewTableCellBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *TableCellBox {
	out := TableCellBox{BoxFields: newBoxFields(style, element, pseudoType, children)}
	out.internalTableOrCaption = true

	// HTML 4.01 gave special meaning to colspan=0, HTML 5 removed it;
	// rowspan=0 ("span to the end of the row group") is still there.
	out.Colspan = integerAttribute(utils.AsHTMLNode(element).Get("colspan"), 1)
	out.Rowspan = integerAttribute(utils.AsHTMLNode(element).Get("rowspan"), 0)
	return &out
}

func NewTableCaptionBox(style pr.Properties, element *html.Node, pseudoType string, children []Box) *TableCaptionBox {
	out := TableCaptionBox{BlockBox: *NewBlockBox(style, element, pseudoType, children)}
	out.properTableChild = true
	out.internalTableOrCaption = true
	return &out
}

func (b *BlockBox) Copy() Box            { c := *b; return &c }
func (b *LineBox) Copy() Box             { c := *b; return &c }
func (b *InlineBox) Copy() Box           { c := *b; return &c }
func (b *TextBox) Copy() Box             { c := *b; return &c }
func (b *InlineBlockBox) Copy() Box      { c := *b; return &c }
func (b *BlockReplacedBox) Copy() Box    { c := *b; return &c }
func (b *InlineReplacedBox) Copy() Box   { c := *b; return &c }
func (b *TableBox) Copy() Box            { c := *b; return &c }
func (b *InlineTableBox) Copy() Box      { c := *b; return &c }
func (b *TableRowGroupBox) Copy() Box    { c := *b; return &c }
func (b *TableRowBox) Copy() Box         { c := *b; return &c }
func (b *TableColumnGroupBox) Copy() Box { c := *b; return &c }
func (b *TableColumnBox) Copy() Box      { c := *b; return &c }
func (b *TableCellBox) Copy() Box        { c := *b; return &c }
func (b *TableCaptionBox) Copy() Box     { c := *b; return &c }

// CopyWithChildren returns a copy of the box owning `newChildren`, leaving
// the original (and references into its subtree) untouched.
func CopyWithChildren(box Box, newChildren []Box) Box {
	newBox := box.Copy()
	newBox.Box().Children = newChildren
	return newBox
}

// Descendants returns the box and all its descendants, in tree order.
func Descendants(box Box) []Box {
	out := []Box{box}
	for _, child := range box.Box().Children {
		out = append(out, Descendants(child)...)
	}
	return out
}

func (b *BoxFields) String() string {
	return fmt.Sprintf("<Box %s>", b.elementTag)
}
