package dashboard

import "time"

// Sample is one successful poll result.
type Sample struct {
	Time  time.Time
	Value float64
}

// Window is a bounded, time-ordered sample history backed by a ring
// buffer, so eviction is O(1) instead of shifting a slice. Oldest
// samples are evicted first once the bound is reached.
//
// Everything here runs on the render loop, so no locking.
type Window struct {
	data  []Sample
	head  int
	count int
	size  int
}

// NewWindow creates a window holding at most size samples. Sizes below
// 2 are raised to 2, the smallest history that still draws a line.
func NewWindow(size int) *Window {
	if size < 2 {
		size = 2
	}
	return &Window{
		data: make([]Sample, size),
		size: size,
	}
}

// Append adds a sample, evicting the oldest if the window is full.
func (w *Window) Append(s Sample) {
	w.data[w.head] = s
	w.head = (w.head + 1) % w.size
	if w.count < w.size {
		w.count++
	}
}

// Len returns the number of stored samples.
func (w *Window) Len() int {
	return w.count
}

// Cap returns the window bound.
func (w *Window) Cap() int {
	return w.size
}

// Last returns the most recent sample, or false when empty.
func (w *Window) Last() (Sample, bool) {
	if w.count == 0 {
		return Sample{}, false
	}
	idx := (w.head - 1 + w.size) % w.size
	return w.data[idx], true
}

// Visible returns the last count samples in chronological order,
// fewer when the window holds fewer.
func (w *Window) Visible(count int) []Sample {
	if count <= 0 || w.count == 0 {
		return nil
	}
	if count > w.count {
		count = w.count
	}

	result := make([]Sample, count)
	start := (w.head - count + w.size) % w.size
	for i := 0; i < count; i++ {
		result[i] = w.data[(start+i)%w.size]
	}
	return result
}

// All returns every stored sample in chronological order.
func (w *Window) All() []Sample {
	return w.Visible(w.count)
}
