package source

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/queuewatch/qw/internal/errors"
)

// syntheticTarget is the opaque config carried inside a synthetic
// Descriptor.
type syntheticTarget struct {
	Seed int64 `yaml:"seed"`
}

// SyntheticCatalog generates a fixed number of random-walk series. It
// exists so the dashboard can be demoed and tested without any remote
// host; it is also the reference implementation of the Monitor
// contract.
type SyntheticCatalog struct {
	name  string
	count int
	seed  int64
}

// NewSyntheticCatalog builds a catalog producing count series. A zero
// seed picks one from the clock.
func NewSyntheticCatalog(name string, count int, seed int64) *SyntheticCatalog {
	if count < 0 {
		count = 0
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SyntheticCatalog{name: name, count: count, seed: seed}
}

// Available returns one descriptor per generated series. Never fails.
func (c *SyntheticCatalog) Available(ctx context.Context) ([]Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descriptors := []Descriptor{}
	for i := 1; i <= c.count; i++ {
		// Derive a stable per-series seed so each walk is distinct but
		// the whole catalog is reproducible from one seed.
		encoded, err := yaml.Marshal(syntheticTarget{Seed: c.seed + int64(i)})
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, Descriptor{
			Name:   fmt.Sprintf("%s-%d", c.name, i),
			Kind:   KindSynthetic,
			Config: string(encoded),
		})
	}
	return descriptors, nil
}

// Open creates a random-walk monitor from a descriptor.
func (c *SyntheticCatalog) Open(desc Descriptor) (Monitor, error) {
	var target syntheticTarget
	if err := yaml.Unmarshal([]byte(desc.Config), &target); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			fmt.Sprintf("Bad source config for '%s'", desc.Name),
			"Refresh the source list and try again.")
	}
	return NewSyntheticMonitor(target.Seed), nil
}

// SyntheticMonitor emits a bounded random walk. Values stay
// non-negative, like the queue depths they stand in for.
type SyntheticMonitor struct {
	mu     sync.Mutex
	rng    *rand.Rand
	value  float64
	closed bool
}

// NewSyntheticMonitor creates a walk seeded for reproducibility. A zero
// seed picks one from the clock.
func NewSyntheticMonitor(seed int64) *SyntheticMonitor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &SyntheticMonitor{
		rng:   rng,
		value: float64(10 + rng.Intn(40)),
	}
}

// TryBegin reports true until the monitor is closed.
func (m *SyntheticMonitor) TryBegin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// ReadValue advances the walk one step and returns the new value.
func (m *SyntheticMonitor) ReadValue() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, errors.New(errors.ErrSource, "Monitor is closed", "")
	}

	m.value += float64(m.rng.Intn(11) - 5)
	if m.value < 0 {
		m.value = 0
	}
	return m.value, nil
}

// Close marks the monitor closed. Idempotent.
func (m *SyntheticMonitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
