package topic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/extract"
)

// Snapshot is the typed content of a loaded topic.
type Snapshot[S any] interface {
	// Clone returns a deep copy.
	Clone() S
	// Tables flattens the snapshot for rendering, one table per sub-table.
	Tables() []core.Table
}

// BuildFunc materializes extracted tables into a snapshot. It receives
// exactly one table per schema of the Source, in order.
type BuildFunc[S any] func(tables []extract.Table) (S, error)

// Holder owns the current snapshot of one topic. Readers get deep copies;
// Reload replaces the snapshot only when the whole load succeeds.
type Holder[S Snapshot[S]] struct {
	loader *Loader
	source Source
	build  BuildFunc[S]

	mu       sync.RWMutex
	snap     S
	loaded   bool
	url      string
	loadedAt time.Time
}

// NewHolder creates an empty Holder. Nothing is fetched until Load or Reload.
func NewHolder[S Snapshot[S]](loader *Loader, src Source, build BuildFunc[S]) *Holder[S] {
	return &Holder[S]{loader: loader, source: src, build: build}
}

// Source returns the topic declaration.
func (h *Holder[S]) Source() Source {
	return h.source
}

// Load fetches the topic unless a snapshot is already held.
func (h *Holder[S]) Load(ctx context.Context) error {
	if h.Loaded() {
		return nil
	}
	return h.Reload(ctx)
}

// Reload fully re-derives the snapshot. On error the previous snapshot, if
// any, stays in place.
func (h *Holder[S]) Reload(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Reload")
	defer span.End()

	page, err := h.loader.Tables(ctx, h.source)
	if err != nil {
		return fmt.Errorf("%s: %w", h.source.Name, err)
	}

	snap, err := h.build(page.Tables)
	if err != nil {
		h.loader.logger().ErrorContext(ctx, "materialize failed", "topic", h.source.Name, "err", err)
		return fmt.Errorf("%s: materialize: %w", h.source.Name, err)
	}

	h.mu.Lock()
	h.snap = snap
	h.loaded = true
	h.url = page.URL
	h.loadedAt = page.FetchedAt
	h.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the current snapshot, or the zero
// snapshot before the first successful load.
func (h *Holder[S]) Snapshot() S {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap.Clone()
}

// Loaded reports whether a snapshot is held.
func (h *Holder[S]) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loaded
}

// LoadedAt returns the fetch time of the held snapshot.
func (h *Holder[S]) LoadedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadedAt
}

// Document flattens the held snapshot for the renderers.
func (h *Holder[S]) Document() core.Document {
	h.mu.RLock()
	defer h.mu.RUnlock()

	tables := h.snap.Clone().Tables()
	for i := range tables {
		if tables[i].Name == "" {
			tables[i].Name = h.source.Name
		}
	}
	return core.Document{
		Topic:     h.source.Name,
		URL:       h.url,
		FetchedAt: h.loadedAt,
		Tables:    tables,
	}
}
