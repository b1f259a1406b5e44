package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(sec int, value float64) Sample {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return Sample{Time: base.Add(time.Duration(sec) * time.Second), Value: value}
}

func TestWindowBound(t *testing.T) {
	w := NewWindow(5)

	for i := 0; i < 20; i++ {
		w.Append(sampleAt(i, float64(i)))
		assert.LessOrEqual(t, w.Len(), 5, "bound holds after every append")
	}
	assert.Equal(t, 5, w.Len())

	// Exactly the most recent samples, in time order.
	all := w.All()
	require.Len(t, all, 5)
	for i, s := range all {
		assert.Equal(t, float64(15+i), s.Value)
	}
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Time.Before(all[i-1].Time))
	}
}

func TestWindowFIFOEviction(t *testing.T) {
	w := NewWindow(3)
	for i, v := range []float64{5, 7, 2, 9} {
		w.Append(sampleAt(i+1, v))
	}

	all := w.All()
	require.Len(t, all, 3)
	assert.Equal(t, []float64{7, 2, 9}, []float64{all[0].Value, all[1].Value, all[2].Value})
	assert.Equal(t, sampleAt(2, 7).Time, all[0].Time)
	assert.Equal(t, sampleAt(4, 9).Time, all[2].Time)
}

func TestWindowLast(t *testing.T) {
	w := NewWindow(3)

	_, ok := w.Last()
	assert.False(t, ok)

	w.Append(sampleAt(1, 5))
	w.Append(sampleAt(2, 7))
	last, ok := w.Last()
	require.True(t, ok)
	assert.Equal(t, 7.0, last.Value)
}

func TestWindowVisible(t *testing.T) {
	w := NewWindow(10)
	for i := 0; i < 6; i++ {
		w.Append(sampleAt(i, float64(i)))
	}

	visible := w.Visible(4)
	require.Len(t, visible, 4)
	assert.Equal(t, 2.0, visible[0].Value)
	assert.Equal(t, 5.0, visible[3].Value)

	assert.Len(t, w.Visible(100), 6, "asking for more than stored returns everything")
	assert.Nil(t, w.Visible(0))
}

func TestWindowMinimumSize(t *testing.T) {
	w := NewWindow(0)
	assert.Equal(t, 2, w.Cap(), "sizes below 2 are raised")
}
