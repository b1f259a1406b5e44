package dashboard

import (
	"math"
	"time"
)

// minDisplaySpanSeconds keeps the x axis sane when the visible window
// covers almost no time (one sample, or a burst of polls in the same
// instant).
const minDisplaySpanSeconds = 60.0

// yAxisLabelTarget is roughly how many y axis labels a chart aims for.
const yAxisLabelTarget = 5

// ChartGeometry maps the visible samples into screen cells. It is
// recomputed from scratch on every accepted sample; nothing in it is
// incremental, so it can never be partially stale.
type ChartGeometry struct {
	VisibleCount int
	DisplaySpan  float64 // seconds covered by the x axis
	YMin         float64
	YMax         float64
	YIncrement   float64
	XCellSize    float64 // seconds per horizontal cell
	YCellSize    float64 // units per vertical cell
	XLabelEvery  float64 // seconds between x axis labels
}

// ComputeGeometry derives chart geometry for the given samples and a
// chart area of width x height cells. The samples must be in
// chronological order; only the most recent ones that fit the width
// are considered visible.
func ComputeGeometry(samples []Sample, width, height int) ChartGeometry {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	g := ChartGeometry{}
	g.VisibleCount = len(samples)
	if g.VisibleCount > width {
		g.VisibleCount = width
	}
	visible := samples[len(samples)-g.VisibleCount:]

	// Display span, clamped so a single point or a same-instant burst
	// never divides by zero downstream.
	span := 0.0
	if g.VisibleCount >= 2 {
		span = visible[g.VisibleCount-1].Time.Sub(visible[0].Time).Seconds()
	}
	if span < minDisplaySpanSeconds {
		span = minDisplaySpanSeconds
	}
	g.DisplaySpan = span

	minV, maxV := 0.0, 0.0
	if g.VisibleCount > 0 {
		minV, maxV = visible[0].Value, visible[0].Value
		for _, s := range visible[1:] {
			if s.Value < minV {
				minV = s.Value
			}
			if s.Value > maxV {
				maxV = s.Value
			}
		}
	}

	// Integer bounds; values are non-negative counts.
	dataMin := math.Floor(math.Max(0, minV))
	dataMax := math.Ceil(maxV)

	// A flat series still gets visible vertical range.
	if dataMax-dataMin < 2 {
		dataMax = dataMin + 2
	}

	// One unit of breathing room each side, never below zero.
	lo := math.Max(0, dataMin-1)
	hi := dataMax + 1

	// Anchor the floor at zero when the gap below the data is no
	// bigger than the data span itself; small counts read better
	// against a zero baseline, large steady ones keep a raised floor.
	if lo <= hi-lo {
		lo = 0
	}

	g.YIncrement = math.Max(1, math.Ceil((hi-lo)/yAxisLabelTarget))
	g.YMin = math.Floor(lo/g.YIncrement) * g.YIncrement
	g.YMax = math.Ceil(hi/g.YIncrement) * g.YIncrement
	if g.YMax <= g.YMin {
		g.YMax = g.YMin + g.YIncrement
	}

	g.XCellSize = g.DisplaySpan / float64(width)
	g.YCellSize = (g.YMax - g.YMin) / float64(height)

	// One time label roughly every 10 cells, floored at 5 seconds.
	g.XLabelEvery = math.Max(5, math.Round(g.XCellSize*10))

	return g
}

// PointAt maps a sample to a screen cell within a width x height chart
// whose right edge is the reference time. Row 0 is the top.
func (g ChartGeometry) PointAt(s Sample, ref time.Time, width, height int) (col, row int) {
	if g.XCellSize <= 0 || g.YCellSize <= 0 {
		return 0, height - 1
	}

	ago := ref.Sub(s.Time).Seconds()
	col = width - 1 - int(math.Round(ago/g.XCellSize))
	if col < 0 {
		col = 0
	}
	if col > width-1 {
		col = width - 1
	}

	row = height - 1 - int(math.Round((s.Value-g.YMin)/g.YCellSize))
	if row < 0 {
		row = 0
	}
	if row > height-1 {
		row = height - 1
	}
	return col, row
}
