package dashboard

import (
	"fmt"
	"math"
	"strings"
)

// Chart glyphs. The cell grid has no diagonal primitive, so transitions
// between values are drawn as stepped runs with rounded corners.
const (
	glyphHorizontal = '─'
	glyphVertical   = '│'
	glyphDownRight  = '╮' // travelling right, turning down
	glyphUpRight    = '╯' // travelling right, turning up
	glyphRightDown  = '╰' // arriving from above, turning right
	glyphRightUp    = '╭' // arriving from below, turning right
	glyphMark       = '•'
)

// minStepWidth is the narrowest horizontal gap that still gets the
// midpoint step; anything narrower falls back to a plain L-step so the
// corner glyphs don't overlap.
const minStepWidth = 3

// RenderChart draws the visible samples into a width x height cell grid
// and returns one string per row. The most recent sample sits at the
// right edge. Degenerate inputs render an empty grid rather than
// failing.
func RenderChart(samples []Sample, width, height int) []string {
	if width < 1 || height < 1 {
		return nil
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	geom := ComputeGeometry(samples, width, height)
	if geom.VisibleCount > 0 {
		visible := samples[len(samples)-geom.VisibleCount:]
		ref := visible[len(visible)-1].Time

		type point struct{ col, row int }
		points := make([]point, len(visible))
		for i, s := range visible {
			col, row := geom.PointAt(s, ref, width, height)
			points[i] = point{col, row}
		}

		if len(points) == 1 {
			grid[points[0].row][points[0].col] = glyphMark
		}
		for i := 1; i < len(points); i++ {
			prev, cur := points[i-1], points[i]
			// Time order means cur never sits left of prev, but cell
			// clamping can collapse the gap.
			if cur.col < prev.col {
				cur.col = prev.col
			}
			drawTransition(grid, prev.col, prev.row, cur.col, cur.row)
		}
	}

	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

// drawTransition connects two sample cells with a stepped path:
// horizontal to the midpoint between the columns, vertical to the new
// row, horizontal to the target column. Narrow gaps fall back to an
// L-step; straight transitions are plain runs; identical cells are a
// single mark.
func drawTransition(grid [][]rune, x1, y1, x2, y2 int) {
	switch {
	case x1 == x2 && y1 == y2:
		setCell(grid, x1, y1, glyphMark)

	case y1 == y2:
		for x := x1; x <= x2; x++ {
			setCell(grid, x, y1, glyphHorizontal)
		}

	case x1 == x2:
		lo, hi := y1, y2
		if lo > hi {
			lo, hi = hi, lo
		}
		for y := lo; y <= hi; y++ {
			setCell(grid, x1, y, glyphVertical)
		}

	case x2-x1 < minStepWidth:
		drawCornerColumn(grid, x1, x2, x2, y1, y2, false)

	default:
		drawCornerColumn(grid, x1, x2, x1+(x2-x1)/2, y1, y2, true)
	}
}

// drawCornerColumn draws horizontal runs at y1 and (optionally) y2
// joined by a vertical run at bendX. When tail is false the vertical
// run lands directly on the target cell (plain L-step).
func drawCornerColumn(grid [][]rune, x1, x2, bendX, y1, y2 int, tail bool) {
	for x := x1; x < bendX; x++ {
		setCell(grid, x, y1, glyphHorizontal)
	}

	goingDown := y2 > y1
	if goingDown {
		setCell(grid, bendX, y1, glyphDownRight)
		for y := y1 + 1; y < y2; y++ {
			setCell(grid, bendX, y, glyphVertical)
		}
		setCell(grid, bendX, y2, glyphRightDown)
	} else {
		setCell(grid, bendX, y1, glyphUpRight)
		for y := y1 - 1; y > y2; y-- {
			setCell(grid, bendX, y, glyphVertical)
		}
		setCell(grid, bendX, y2, glyphRightUp)
	}

	if tail {
		for x := bendX + 1; x <= x2; x++ {
			setCell(grid, x, y2, glyphHorizontal)
		}
	}
}

func setCell(grid [][]rune, x, y int, r rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = r
}

// YAxisLabels returns one label per chart row, top first, in a fixed
// gutter width. Only the top, middle, and bottom rows carry values;
// the rest are padding.
func YAxisLabels(geom ChartGeometry, height, gutter int) []string {
	labels := make([]string, height)
	blank := strings.Repeat(" ", gutter)
	for i := range labels {
		labels[i] = blank
	}
	if height < 1 {
		return labels
	}

	format := func(v float64) string {
		s := formatAxisValue(v)
		if len(s) > gutter {
			s = s[:gutter]
		}
		return fmt.Sprintf("%*s", gutter, s)
	}

	labels[0] = format(geom.YMax)
	labels[height-1] = format(geom.YMin)
	if height >= 5 {
		labels[height/2] = format(geom.YMin + (geom.YMax-geom.YMin)/2)
	}
	return labels
}

// XAxisLabels renders a single bottom line of seconds-ago markers, one
// roughly every 10 cells per the geometry's label increment.
func XAxisLabels(geom ChartGeometry, width int) string {
	if width < 1 {
		return ""
	}

	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}

	for col := width - 1; col >= 0; col -= 10 {
		ago := float64(width-1-col) * geom.XCellSize
		// Snap to the label increment so markers read as round numbers.
		ago = math.Round(ago/geom.XLabelEvery) * geom.XLabelEvery
		label := fmt.Sprintf("-%ds", int(ago))
		if col == width-1 {
			label = "now"
		}
		start := col - len(label) + 1
		if start < 0 {
			continue
		}
		for i, r := range label {
			row[start+i] = r
		}
	}
	return string(row)
}

func formatAxisValue(v float64) string {
	if v >= 1000000 {
		return fmt.Sprintf("%.1fM", v/1000000)
	}
	if v >= 10000 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}
