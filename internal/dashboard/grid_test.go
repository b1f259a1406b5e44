package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridColumnsBoundary(t *testing.T) {
	assert.Equal(t, 1, GridColumns(99), "below the breakpoint is single column")
	assert.Equal(t, 2, GridColumns(100), "at the breakpoint is two columns")
	assert.Equal(t, 1, GridColumns(40))
	assert.Equal(t, 2, GridColumns(200))
}

func TestGridRows(t *testing.T) {
	tests := []struct {
		count, width, want int
	}{
		{0, 120, 0},
		{1, 120, 1},
		{2, 120, 1},
		{3, 120, 2},
		{3, 80, 3},
		{4, 120, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GridRows(tt.count, tt.width),
			"count=%d width=%d", tt.count, tt.width)
	}
}

func TestCardWidth(t *testing.T) {
	assert.Equal(t, 80, CardWidth(80, 80), "single column takes the full pane")
	assert.Equal(t, 45, CardWidth(90, 120), "two columns split the pane")
	assert.Equal(t, minCardWidth, CardWidth(10, 80), "narrow panes clamp to the minimum")
	assert.Equal(t, minCardWidth, CardWidth(40, 120), "split never goes below the minimum")
}

func TestRenderGridRowMajor(t *testing.T) {
	cards := []string{"A", "B", "C"}

	// Two columns: A and B share the first row, C starts the second.
	out := RenderGrid(cards, 120)
	assert.Contains(t, out, "AB")

	// One column: every card on its own row.
	out = RenderGrid(cards, 80)
	assert.NotContains(t, out, "AB")

	assert.Equal(t, "", RenderGrid(nil, 120))
}
