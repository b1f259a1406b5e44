package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuewatch/qw/internal/config"
)

func TestRegistryAvailable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sources["alpha"] = config.Source{Kind: config.KindSynthetic, Count: 2, Seed: 1}
	cfg.Sources["beta"] = config.Source{Kind: config.KindSynthetic, Count: 1, Seed: 2}

	r := NewRegistry(cfg, NewPool(time.Second))
	assert.Equal(t, 2, r.Size())

	descriptors, err := r.Available(context.Background())
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	// Catalogs are visited in name order.
	assert.Equal(t, "alpha-1", descriptors[0].Name)
	assert.Equal(t, "alpha-2", descriptors[1].Name)
	assert.Equal(t, "beta-1", descriptors[2].Name)
}

func TestRegistryOpenRoutes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sources["demo"] = config.Source{Kind: config.KindSynthetic, Count: 1, Seed: 9}

	r := NewRegistry(cfg, NewPool(time.Second))
	descriptors, err := r.Available(context.Background())
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	m, err := r.Open(descriptors[0])
	require.NoError(t, err)
	defer m.Close()

	assert.True(t, m.TryBegin())
}

func TestRegistryOpenUnknownDescriptor(t *testing.T) {
	cfg := config.DefaultConfig()
	r := NewRegistry(cfg, NewPool(time.Second))

	_, err := r.Open(Descriptor{Name: "ghost", Kind: KindSynthetic})
	assert.Error(t, err)
}

func TestRegistryIgnoresUnknownKind(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sources["weird"] = config.Source{Kind: "carrier-pigeon"}

	r := NewRegistry(cfg, NewPool(time.Second))
	assert.Equal(t, 0, r.Size())

	descriptors, err := r.Available(context.Background())
	require.NoError(t, err)
	assert.Empty(t, descriptors)
}
