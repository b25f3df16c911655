package boxes

import pr "github.com/lherbaut/boxtree/css/properties"

// Score ranks the borders competing for one edge of the grid
// (CSS 2.1 §17.6.2.1): hidden beats everything, then the widest border,
// then the strongest style.
type Score struct {
	Hidden int
	Width  pr.Fl
	Style  int
}

func (s Score) higher(other Score) bool {
	if s.Hidden != other.Hidden {
		return s.Hidden > other.Hidden
	}
	if s.Width != other.Width {
		return s.Width > other.Width
	}
	return s.Style > other.Style
}

// Border is the winner of the conflict resolution for one edge.
type Border struct {
	Style string
	Score Score
	Width pr.Fl
	Color pr.Color
}

// BorderGrids stores the resolved borders of a table in the collapsed
// border model. Vertical edges are indexed by [row][column edge]
// (gridHeight rows of gridWidth+1 edges), horizontal ones by
// [row edge][column].
type BorderGrids struct {
	Vertical, Horizontal [][]Border
}

// border style strength, strongest last
var styleScores = map[string]int{
	"none":   0,
	"inset":  1,
	"groove": 2,
	"outset": 3,
	"ridge":  4,
	"dotted": 5,
	"dashed": 6,
	"solid":  7,
	"double": 8,
	"hidden": 9,
}

// in the collapsed model the 3D styles degenerate
var styleMap = map[string]string{
	"inset":  "ridge",
	"outset": "groove",
}

// collapseTableBorders resolves border conflicts for a table in the
// collapsing border model, and records the used border widths: half the
// winning edge width on each participating box, zero on rows, groups and
// columns. The declared styles are left untouched, so the resolution can
// be replayed.
func collapseTableBorders(table TableBoxITF, gridWidth, gridHeight int) BorderGrids {
	if gridWidth == 0 || gridHeight == 0 {
		// empty table
		return BorderGrids{}
	}

	weakNullBorder := Border{Style: "none"}
	verticalBorders := make([][]Border, gridHeight)
	for y := range verticalBorders {
		row := make([]Border, gridWidth+1)
		for x := range row {
			row[x] = weakNullBorder
		}
		verticalBorders[y] = row
	}
	horizontalBorders := make([][]Border, gridHeight+1)
	for y := range horizontalBorders {
		row := make([]Border, gridWidth)
		for x := range row {
			row[x] = weakNullBorder
		}
		horizontalBorders[y] = row
	}

	setOneBorder := func(grid [][]Border, style pr.Properties, side pr.Side, gridX, gridY int) {
		borderStyle := string(style.GetBorderStyleSide(side))
		width := pr.Fl(style.GetBorderWidthSide(side))
		color := style.GetBorderColorSide(side)

		score := Score{Width: width, Style: styleScores[borderStyle]}
		if borderStyle == "hidden" {
			score.Hidden = 1
		}
		if borderStyle == "none" {
			score.Width = 0
		}
		if mapped, in := styleMap[borderStyle]; in {
			borderStyle = mapped
		}

		if score.higher(grid[gridY][gridX].Score) {
			grid[gridY][gridX] = Border{Score: score, Style: borderStyle, Width: width, Color: color}
		}
	}

	setBorders := func(box Box, x, y, w, h int) {
		style := box.Box().Style
		for yy := y; yy < y+h; yy++ {
			setOneBorder(verticalBorders, style, pr.SLeft, x, yy)
			setOneBorder(verticalBorders, style, pr.SRight, x+w, yy)
		}
		for xx := x; xx < x+w; xx++ {
			setOneBorder(horizontalBorders, style, pr.STop, xx, y)
			setOneBorder(horizontalBorders, style, pr.SBottom, xx, y+h)
		}
	}

	// sealed edges inside a spanning cell cannot be claimed by anyone
	strongNullBorder := Border{Score: Score{Hidden: 1, Style: styleScores["hidden"]}, Style: "hidden"}

	gridY := 0
	for _, rowGroup := range table.Box().Children {
		for _, row := range rowGroup.Box().Children {
			for _, child := range row.Box().Children {
				cell := child.Box()
				if cell.Colspan > 1 || cell.Rowspan > 1 {
					for yy := gridY; yy < gridY+cell.Rowspan; yy++ {
						for xx := cell.GridX + 1; xx < cell.GridX+cell.Colspan; xx++ {
							verticalBorders[yy][xx] = strongNullBorder
						}
					}
					for yy := gridY + 1; yy < gridY+cell.Rowspan; yy++ {
						for xx := cell.GridX; xx < cell.GridX+cell.Colspan; xx++ {
							horizontalBorders[yy][xx] = strongNullBorder
						}
					}
				}
				setBorders(child, cell.GridX, gridY, cell.Colspan, cell.Rowspan)
			}
			gridY++
		}
	}

	gridY = 0
	for _, rowGroup := range table.Box().Children {
		for _, row := range rowGroup.Box().Children {
			setBorders(row, 0, gridY, gridWidth, 1)
			gridY++
		}
	}

	gridY = 0
	for _, rowGroup := range table.Box().Children {
		rowSpan := len(rowGroup.Box().Children)
		setBorders(rowGroup, 0, gridY, gridWidth, rowSpan)
		gridY += rowSpan
	}

	for _, columnGroup := range table.Table().ColumnGroups {
		for _, column := range columnGroup.Children {
			setBorders(column, column.Box().GridX, 0, 1, gridHeight)
		}
		setBorders(columnGroup, columnGroup.GridX, 0, columnGroup.Span, gridHeight)
	}

	setBorders(table, 0, 0, gridWidth, gridHeight)

	// the style grids are final: record the used widths, half the edge
	// width on each side so that adjacent boxes share it
	setUsedWidth := func(box Box, side pr.Side, twiceWidth pr.Fl) {
		box.Box().UsedBorders[side] = twiceWidth / 2
	}
	removeBorders := func(box Box) {
		box.Box().UsedBorders = [4]pr.Fl{}
	}
	maxVerticalWidth := func(x, y, h int) pr.Fl {
		var max pr.Fl
		for yy := y; yy < y+h; yy++ {
			if w := verticalBorders[yy][x].Width; w > max {
				max = w
			}
		}
		return max
	}
	maxHorizontalWidth := func(x, y, w int) pr.Fl {
		var max pr.Fl
		for xx := x; xx < x+w; xx++ {
			if width := horizontalBorders[y][xx].Width; width > max {
				max = width
			}
		}
		return max
	}

	gridY = 0
	for _, rowGroup := range table.Box().Children {
		removeBorders(rowGroup)
		for _, row := range rowGroup.Box().Children {
			removeBorders(row)
			for _, child := range row.Box().Children {
				cell := child.Box()
				setUsedWidth(child, pr.STop, maxHorizontalWidth(cell.GridX, gridY, cell.Colspan))
				setUsedWidth(child, pr.SBottom, maxHorizontalWidth(cell.GridX, gridY+cell.Rowspan, cell.Colspan))
				setUsedWidth(child, pr.SLeft, maxVerticalWidth(cell.GridX, gridY, cell.Rowspan))
				setUsedWidth(child, pr.SRight, maxVerticalWidth(cell.GridX+cell.Colspan, gridY, cell.Rowspan))
			}
			gridY++
		}
	}
	for _, columnGroup := range table.Table().ColumnGroups {
		removeBorders(columnGroup)
		for _, column := range columnGroup.Children {
			removeBorders(column)
		}
	}
	setUsedWidth(table, pr.STop, maxHorizontalWidth(0, 0, gridWidth))
	setUsedWidth(table, pr.SBottom, maxHorizontalWidth(0, gridHeight, gridWidth))
	// the initial left and right border widths of the table come from
	// the first and last cells of the first row (CSS 2.1 §17.6.2)
	setUsedWidth(table, pr.SLeft, maxVerticalWidth(0, 0, 1))
	setUsedWidth(table, pr.SRight, maxVerticalWidth(gridWidth, 0, 1))

	return BorderGrids{Vertical: verticalBorders, Horizontal: horizontalBorders}
}
