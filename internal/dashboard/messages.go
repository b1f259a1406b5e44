package dashboard

import (
	"time"

	"github.com/queuewatch/qw/internal/source"
)

// pollTickMsg fires a panel's poll timer. The panel reschedules it
// after every tick; a disposed panel's tick is simply not rescheduled,
// which is how its timer stops. The message carries the issuing panel
// itself, not just its name: a source disabled and re-enabled under the
// same name gets a fresh panel, and the old chain's ticks must die with
// the old panel instead of driving its successor.
type pollTickMsg struct {
	name  string
	panel *Panel
}

// pollResultMsg carries one poll's outcome back to the render loop.
// ok=false is a silent drop: one missed reading is not actionable.
// Like pollTickMsg, it is routed by panel identity so an in-flight read
// from a disposed panel is never applied to a successor under the same
// name.
type pollResultMsg struct {
	name  string
	panel *Panel
	value float64
	at    time.Time
	ok    bool
}

// discoveryMsg carries a catalog snapshot (or its failure) back to the
// render loop.
type discoveryMsg struct {
	descriptors []source.Descriptor
	err         error
}

// ToggleMsg is emitted exactly once per toggle action on a catalog
// item. The browser only flips selection state; whoever consumes this
// starts or stops the actual monitor.
type ToggleMsg struct {
	Descriptor source.Descriptor
	Enabled    bool
}
