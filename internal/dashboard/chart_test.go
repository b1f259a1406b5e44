package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChartDimensions(t *testing.T) {
	samples := []Sample{sampleAt(0, 1), sampleAt(10, 5), sampleAt(20, 3)}

	lines := RenderChart(samples, 20, 6)
	require.Len(t, lines, 6)
	for _, line := range lines {
		assert.Len(t, []rune(line), 20)
	}
}

func TestRenderChartSingleSample(t *testing.T) {
	lines := RenderChart([]Sample{sampleAt(0, 4)}, 20, 6)

	marks := 0
	for _, line := range lines {
		marks += strings.Count(line, string(glyphMark))
	}
	assert.Equal(t, 1, marks, "one sample renders one mark")
}

func TestRenderChartFlatSeries(t *testing.T) {
	samples := []Sample{sampleAt(0, 5), sampleAt(30, 5), sampleAt(60, 5)}
	lines := RenderChart(samples, 30, 6)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, string(glyphHorizontal), "flat series is a straight run")
	assert.NotContains(t, joined, string(glyphVertical))
	assert.NotContains(t, joined, string(glyphDownRight))
}

func TestRenderChartStepHasNoDiagonals(t *testing.T) {
	samples := []Sample{sampleAt(0, 0), sampleAt(30, 10), sampleAt(60, 2)}
	lines := RenderChart(samples, 40, 8)

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, string(glyphVertical), "value changes draw vertical runs")
	for _, diagonal := range []string{"/", "\\", "╱", "╲"} {
		assert.NotContains(t, joined, diagonal)
	}
}

func TestRenderChartDegenerateInputs(t *testing.T) {
	assert.Nil(t, RenderChart(nil, 0, 6))
	assert.Nil(t, RenderChart(nil, 20, 0))

	assert.NotPanics(t, func() {
		RenderChart(nil, 20, 6)
		RenderChart([]Sample{sampleAt(0, 0)}, 1, 1)
		RenderChart([]Sample{sampleAt(0, 1), sampleAt(0, 9)}, 2, 2)
	})
}

func TestRenderChartIdenticalSamplesSingleMark(t *testing.T) {
	// Same instant, same value: the pair collapses to one cell.
	samples := []Sample{sampleAt(0, 4), sampleAt(0, 4)}
	lines := RenderChart(samples, 20, 6)

	marks := 0
	for _, line := range lines {
		marks += strings.Count(line, string(glyphMark))
	}
	assert.Equal(t, 1, marks)
}

func TestYAxisLabels(t *testing.T) {
	g := ComputeGeometry([]Sample{sampleAt(0, 4)}, 20, 6)
	labels := YAxisLabels(g, 6, 6)

	require.Len(t, labels, 6)
	for _, label := range labels {
		assert.Len(t, label, 6, "gutter width is fixed")
	}
	assert.Contains(t, labels[0], formatAxisValue(g.YMax))
	assert.Contains(t, labels[5], formatAxisValue(g.YMin))
}

func TestXAxisLabels(t *testing.T) {
	g := ComputeGeometry([]Sample{sampleAt(0, 4)}, 40, 6)
	row := XAxisLabels(g, 40)

	assert.Len(t, []rune(row), 40)
	assert.True(t, strings.HasSuffix(row, "now"))
}

func TestFormatAxisValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{9500, "9500"},
		{12000, "12k"},
		{2500000, "2.5M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAxisValue(tt.in))
	}
}
