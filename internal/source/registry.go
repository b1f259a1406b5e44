package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/queuewatch/qw/internal/config"
	"github.com/queuewatch/qw/internal/errors"
)

// Registry fans discovery out over every configured catalog and routes
// Open calls back to the catalog that produced each descriptor. It is
// itself a Catalog, so the dashboard only ever talks to one.
type Registry struct {
	catalogs map[string]Catalog

	mu     sync.Mutex
	origin map[string]string // descriptor name -> catalog name, last snapshot
}

// NewRegistry builds catalogs for every source in the config. Remote
// sources share the given connection pool.
func NewRegistry(cfg *config.Config, pool *Pool) *Registry {
	catalogs := make(map[string]Catalog)
	for name, src := range cfg.Sources {
		switch src.Kind {
		case config.KindRemote:
			catalogs[name] = NewRemoteCatalog(name, src, pool)
		case config.KindSynthetic:
			catalogs[name] = NewSyntheticCatalog(name, src.Count, src.Seed)
		}
	}
	return &Registry{
		catalogs: catalogs,
		origin:   make(map[string]string),
	}
}

// Available runs discovery across all catalogs, in catalog-name order
// so snapshots are deterministic. One catalog failing fails the whole
// snapshot; partial source lists would silently hide hosts that are
// down, which is exactly the kind of failure discovery should surface.
func (r *Registry) Available(ctx context.Context) ([]Descriptor, error) {
	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)

	all := []Descriptor{}
	origin := make(map[string]string)
	for _, name := range names {
		descriptors, err := r.catalogs[name].Available(ctx)
		if err != nil {
			return nil, err
		}
		for _, desc := range descriptors {
			origin[desc.Name] = name
		}
		all = append(all, descriptors...)
	}

	r.mu.Lock()
	r.origin = origin
	r.mu.Unlock()

	return all, nil
}

// Open routes to the catalog that produced the descriptor in the most
// recent snapshot.
func (r *Registry) Open(desc Descriptor) (Monitor, error) {
	r.mu.Lock()
	catalogName, ok := r.origin[desc.Name]
	r.mu.Unlock()

	if !ok {
		return nil, errors.New(errors.ErrSource,
			fmt.Sprintf("'%s' isn't in the current source list", desc.Name),
			"Refresh the source list and try again.")
	}
	return r.catalogs[catalogName].Open(desc)
}

// Size returns the number of configured catalogs.
func (r *Registry) Size() int {
	return len(r.catalogs)
}
