package boxes

import (
	pr "github.com/lherbaut/boxtree/css/properties"
	"github.com/lherbaut/boxtree/utils"
)

// AnonymousTableBoxes rewrites the tree so that the structural rules of
// tables hold (CSS 2.1 §17.2.1): misparented table boxes are wrapped in
// anonymous tables, loose content inside tables is wrapped in anonymous
// rows and cells, and every table gets an anonymous wrapper box carrying
// its external properties.
func AnonymousTableBoxes(box Box) Box {
	return anonymousTableBoxes(box, false)
}

func anonymousTableBoxes(box Box, inWrapper bool) Box {
	if !ParentT.IsInstance(box) {
		return box
	}
	// bottom-up: the children are repaired first
	children := make([]Box, len(box.Box().Children))
	for i, child := range box.Box().Children {
		children[i] = anonymousTableBoxes(child, box.Box().IsTableWrapper)
	}
	if inWrapper || box.Box().IsTableWrapper {
		// the subtree went through wrapTable already: the captions are
		// partitioned and the grid is resolved, wrapping again would
		// nest a second anonymous wrapper
		return CopyWithChildren(box, children)
	}
	return tableBoxesChildren(box, children)
}

func isWhitespaceBox(box Box) bool {
	text, ok := box.(*TextBox)
	return ok && utils.IsWhitespace(text.Text)
}

// tableBoxesChildren repairs the relation between one box and its
// children, wrapping them in anonymous boxes where the structure requires
// it.
func tableBoxesChildren(box Box, children []Box) Box {
	switch {
	case TableColumnT.IsInstance(box):
		// rule 1.1: column boxes never have children
		children = nil

	case TableColumnGroupT.IsInstance(box):
		// rule 1.2: column group boxes only contain columns
		var columns []Box
		for _, child := range children {
			if TableColumnT.IsInstance(child) {
				columns = append(columns, child)
			}
		}
		children = columns
		if len(children) == 0 {
			span := integerAttribute(utils.AsHTMLNode(box.Box().Element).Get("span"), 1)
			for i := 0; i < span; i++ {
				children = append(children, AnonymousFrom(box, TableColumnT, nil))
			}
		}
	}

	if box.Box().tabularContainer && len(children) >= 2 {
		// rule 1.3: whitespace at the edge of an internal table box is
		// ignored, seen here as one leading or trailing text box
		if isWhitespaceBox(children[len(children)-1]) &&
			children[len(children)-2].Box().internalTableOrCaption {
			children = children[:len(children)-1]
		}
		if len(children) >= 2 && isWhitespaceBox(children[0]) &&
			children[1].Box().internalTableOrCaption {
			children = children[1:]
		}
	}
	// rule 1.4: whitespace between two internal boxes is ignored
	if len(children) >= 3 {
		kept := children[:0:0]
		kept = append(kept, children[0])
		for i := 1; i < len(children)-1; i++ {
			if isWhitespaceBox(children[i]) &&
				children[i-1].Box().internalTableOrCaption &&
				children[i+1].Box().internalTableOrCaption {
				continue
			}
			kept = append(kept, children[i])
		}
		kept = append(kept, children[len(children)-1])
		children = kept
	}

	switch {
	case TableT.IsInstance(box):
		// rule 2.1: runs of misplaced content become anonymous rows
		children = wrapImproper(box, children, TableRowT, func(child Box) bool {
			return child.Box().properTableChild
		})
	case TableRowGroupT.IsInstance(box):
		// rule 2.2: row groups only contain rows
		children = wrapImproper(box, children, TableRowT, nil)
	case TableRowT.IsInstance(box):
		// rule 2.3: rows only contain cells
		children = wrapImproper(box, children, TableCellT, nil)
	default:
		// rule 3.1: cells outside a row get an anonymous row
		children = wrapImproper(box, children, TableRowT, func(child Box) bool {
			return !TableCellT.IsInstance(child)
		})
		// rule 3.2: misparented proper table children get an
		// anonymous table, inline inside inline content
		if InlineT.IsInstance(box) {
			children = wrapImproper(box, children, InlineTableT, func(child Box) bool {
				return !child.Box().properTableChild
			})
		} else {
			parentType := box.Type()
			children = wrapImproper(box, children, TableT, func(child Box) bool {
				return !child.Box().properTableChild ||
					isProperParent(child, parentType)
			})
		}
	}

	if table, ok := box.(TableBoxITF); ok {
		return wrapTable(table, children)
	}
	return CopyWithChildren(box, children)
}

// wrapImproper wraps consecutive children not satisfying `test` in an
// anonymous box of kind `wrapperType`, itself repaired recursively. A nil
// test accepts instances of wrapperType. Improper children of a column
// group are dropped instead of wrapped.
func wrapImproper(box Box, children []Box, wrapperType BoxType, test func(Box) bool) []Box {
	if test == nil {
		test = wrapperType.IsInstance
	}
	var out, improper []Box
	for _, child := range children {
		if test(child) {
			if len(improper) != 0 {
				wrapper := AnonymousFrom(box, wrapperType, nil)
				out = append(out, tableBoxesChildren(wrapper, improper))
				improper = nil
			}
			out = append(out, child)
		} else {
			// whitespace either fails the test or was removed earlier,
			// so the runs are really consecutive
			if !TableColumnGroupT.IsInstance(box) {
				improper = append(improper, child)
			}
		}
	}
	if len(improper) != 0 {
		wrapper := AnonymousFrom(box, wrapperType, nil)
		out = append(out, tableBoxesChildren(wrapper, improper))
	}
	return out
}

// wrapTable finishes the repair of one table: it sorts the children into
// columns, rows and captions, groups them, resolves the grid coordinates
// of columns and cells, resolves collapsed borders, and wraps the table
// in an anonymous block (or inline-block) carrying the captions and the
// external style of the table.
func wrapTable(box TableBoxITF, children []Box) Box {
	var columns, rows, allCaptions []Box
	for _, child := range children {
		switch {
		case TableColumnT.IsInstance(child) || TableColumnGroupT.IsInstance(child):
			columns = append(columns, child)
		case TableRowT.IsInstance(child) || TableRowGroupT.IsInstance(child):
			rows = append(rows, child)
		case TableCaptionT.IsInstance(child):
			allCaptions = append(allCaptions, child)
		}
	}
	var captionsTop, captionsBottom []Box
	for _, caption := range allCaptions {
		if caption.Box().Style.GetCaptionSide() == "bottom" {
			captionsBottom = append(captionsBottom, caption)
		} else {
			captionsTop = append(captionsTop, caption)
		}
	}

	// loose columns go into an anonymous column group
	var columnGroups []*TableColumnGroupBox
	for _, group := range wrapImproper(box, columns, TableColumnGroupT, nil) {
		columnGroups = append(columnGroups, group.(*TableColumnGroupBox))
	}
	gridX := 0
	for _, group := range columnGroups {
		group.GridX = gridX
		if len(group.Children) != 0 {
			for _, column := range group.Children {
				column.Box().GridX = gridX
				gridX++
			}
			group.Span = len(group.Children)
		} else {
			gridX += group.Span
		}
	}
	gridWidth := gridX

	rowGroups := wrapImproper(box, rows, TableRowGroupT, nil)
	// the first header and footer, if any, move to the edges
	var header, footer Box
	var bodyGroups []Box
	for _, group := range rowGroups {
		display := group.Box().Style.GetDisplay()
		if display == "table-header-group" && header == nil {
			group.Box().IsHeader = true
			header = group
		} else if display == "table-footer-group" && footer == nil {
			group.Box().IsFooter = true
			footer = group
		} else {
			bodyGroups = append(bodyGroups, group)
		}
	}
	rowGroups = nil
	if header != nil {
		rowGroups = append(rowGroups, header)
	}
	rowGroups = append(rowGroups, bodyGroups...)
	if footer != nil {
		rowGroups = append(rowGroups, footer)
	}

	// assign a grid position to every cell, resolving spans.
	// occupied[i] is the set of grid columns claimed in the i-th row
	// after the current one by cells spanning several rows.
	gridHeight := 0
	for _, group := range rowGroups {
		groupChildren := group.Box().Children
		occupied := make([]map[int]bool, len(groupChildren))
		for i := range occupied {
			occupied[i] = map[int]bool{}
		}
		for _, row := range groupChildren {
			occupiedInRow := occupied[0]
			occupied = occupied[1:]
			gridX := 0
			for _, child := range row.Box().Children {
				cell := child.Box()
				for occupiedInRow[gridX] {
					gridX++
				}
				cell.GridX = gridX
				nextX := gridX + cell.Colspan
				if cell.Rowspan != 1 {
					maxRowspan := len(occupied) + 1
					var spannedRows []map[int]bool
					if cell.Rowspan == 0 {
						// rowspan=0 means "until the end of the group"
						spannedRows = occupied
						cell.Rowspan = maxRowspan
					} else {
						if cell.Rowspan > maxRowspan {
							cell.Rowspan = maxRowspan
						}
						spannedRows = occupied[:cell.Rowspan-1]
					}
					for _, spanned := range spannedRows {
						for x := gridX; x < nextX; x++ {
							spanned[x] = true
						}
					}
				}
				gridX = nextX
				if gridX > gridWidth {
					gridWidth = gridX
				}
			}
		}
		gridHeight += len(groupChildren)
	}

	table := CopyWithChildren(box, rowGroups).(TableBoxITF)
	table.Table().ColumnGroups = columnGroups
	if table.Box().Style.GetBorderCollapse() == "collapse" {
		table.Table().CollapsedBorderGrid = collapseTableBorders(table, gridWidth, gridHeight)
	}

	wrapperType := BlockT
	if InlineTableT.IsInstance(table) {
		wrapperType = InlineBlockT
	}
	wrapperChildren := append(append(append([]Box{}, captionsTop...), table), captionsBottom...)
	wrapper := AnonymousFrom(table, wrapperType, wrapperChildren)
	wrapperFields := wrapper.Box()
	wrapperFields.IsTableWrapper = true

	// the external properties of the table apply to the wrapper, the
	// table keeps the rest (CSS 2.1 §17.4)
	tableFields := table.Box()
	wrapperFields.Style = wrapperFields.Style.Copy()
	tableFields.Style = tableFields.Style.Copy()
	for _, name := range pr.TableWrapperBoxProperties {
		wrapperFields.Style[name] = tableFields.Style[name]
		tableFields.Style[name] = pr.InitialValues[name]
	}

	return wrapper
}
