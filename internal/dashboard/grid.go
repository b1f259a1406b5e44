package dashboard

import "github.com/charmbracelet/lipgloss"

// Grid layout constants. Below the breakpoint every card takes the
// full row; at or above it cards pair up two per row.
const (
	GridBreakpoint = 100
	CardHeight     = 12

	// minCardWidth is the narrowest a card can go and still fit its
	// title, value, and axis gutter.
	minCardWidth = 24
)

// GridColumns returns the column count for a viewport width.
func GridColumns(width int) int {
	if width < GridBreakpoint {
		return 1
	}
	return 2
}

// GridRows returns the number of rows needed for count panels.
func GridRows(count, width int) int {
	columns := GridColumns(width)
	return (count + columns - 1) / columns
}

// CardWidth splits the grid pane width evenly across the column count
// for the viewport. The column count follows the full viewport width
// (that is where the breakpoint is measured); the cards split only the
// pane left of the browser. Never below the minimum a card needs.
func CardWidth(gridWidth, viewportWidth int) int {
	if gridWidth < minCardWidth {
		gridWidth = minCardWidth
	}
	w := gridWidth / GridColumns(viewportWidth)
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

// RenderGrid places rendered cards row-major and joins them into one
// block. Layout is a pure function of the card list and viewport
// width; a resize that crosses the breakpoint simply re-runs it.
func RenderGrid(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}

	columns := GridColumns(width)
	rows := make([]string, 0, GridRows(len(cards), width))
	for i := 0; i < len(cards); i += columns {
		end := i + columns
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
