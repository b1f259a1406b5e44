// Package source defines the contracts between the dashboard engine and
// the things it measures. A Monitor is a pollable handle to one scalar
// metric; a Catalog discovers which monitors are currently available
// and opens them. The engine only ever sees these interfaces, so tests
// run against in-memory fakes and production runs against SSH-backed
// queues, with a synthetic random walk available for demos.
package source

import "context"

// Kind tags for descriptors.
const (
	KindRemote    = "remote"
	KindSynthetic = "synthetic"
)

// Descriptor identifies one discoverable metric source within a single
// discovery snapshot. Name is unique within that snapshot. Config is an
// opaque blob the producing catalog knows how to turn back into a
// Monitor; nothing else should look inside it.
type Descriptor struct {
	Name   string
	Kind   string
	Config string
}

// Monitor is a pollable scalar source. Implementations are owned by
// exactly one panel at a time and are never shared.
type Monitor interface {
	// TryBegin reports whether the underlying resource is reachable and
	// present. It fails closed: unreachable or absent both return false.
	TryBegin() bool

	// ReadValue returns the current scalar. Calls are independent of
	// each other; an error means this one poll failed, not that the
	// monitor is dead.
	ReadValue() (float64, error)

	// Close releases anything the monitor holds. Idempotent.
	Close() error
}

// Catalog enumerates available sources and opens monitors for them.
// Available may be slow (it can hit the network) and is always invoked
// off the render loop.
type Catalog interface {
	// Available returns a one-shot snapshot of discoverable sources.
	// It returns an empty slice, never nil, when nothing is found.
	Available(ctx context.Context) ([]Descriptor, error)

	// Open instantiates a Monitor for a descriptor this catalog
	// produced. The caller owns the returned monitor and must Close it.
	Open(desc Descriptor) (Monitor, error)
}
