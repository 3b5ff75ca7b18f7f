package source

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"switchyard/internal/logging"
)

// Registry owns the set of live sources. Sources keep their id for their
// whole lifetime; removal stops their audio tracks. All methods are safe for
// concurrent use.
type Registry struct {
	logger *slog.Logger

	mu       sync.RWMutex
	order    []string
	byID     map[string]*Source
	onRemove func(id string)
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logging.NewComponentLogger(logger, "source-registry"),
		byID:   make(map[string]*Source),
	}
}

// Add registers a new source and returns it. Tracks may be empty for a
// video-only source.
func (r *Registry) Add(typ Type, label string, tracks ...Track) *Source {
	src := &Source{
		ID:     uuid.NewString(),
		Type:   typ,
		Label:  label,
		tracks: tracks,
	}
	r.mu.Lock()
	r.byID[src.ID] = src
	r.order = append(r.order, src.ID)
	r.mu.Unlock()

	r.logger.Info("source added",
		logging.String(logging.FieldSourceID, src.ID),
		logging.String("type", string(typ)),
		logging.String("label", label),
		logging.Int("tracks", len(tracks)),
	)
	return src
}

// SetRemoveHook installs a callback invoked after a source is removed. The
// session points this at the audio graph so a removal drops the source's tap
// immediately instead of waiting for the next reconcile.
func (r *Registry) SetRemoveHook(fn func(id string)) {
	r.mu.Lock()
	r.onRemove = fn
	r.mu.Unlock()
}

// Remove deletes a source, stops its audio tracks, and fires the remove hook.
// Returns false when the id is unknown, which callers treat as
// already-removed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	src, ok := r.byID[id]
	hook := r.onRemove
	if ok {
		delete(r.byID, id)
		for i, existing := range r.order {
			if existing == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	src.closeTracks()
	if hook != nil {
		hook(id)
	}
	r.logger.Info("source removed", logging.String(logging.FieldSourceID, id))
	return true
}

// Get returns the source with the given id.
func (r *Registry) Get(id string) (*Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.byID[id]
	return src, ok
}

// List returns the sources in insertion order. The slice is a snapshot; the
// Source pointers remain live references.
func (r *Registry) List() []*Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Source, 0, len(r.order))
	for _, id := range r.order {
		if src, ok := r.byID[id]; ok {
			out = append(out, src)
		}
	}
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// SetMuted toggles the mute flag, disabling or re-enabling the underlying
// tracks. Returns false for unknown ids.
func (r *Registry) SetMuted(id string, muted bool) bool {
	src, ok := r.Get(id)
	if !ok {
		return false
	}
	src.setMuted(muted)
	r.logger.Debug("source mute changed",
		logging.String(logging.FieldSourceID, id),
		logging.Bool("muted", muted),
	)
	return true
}

// SetBlur toggles the optional background-blur flag. Returns false for
// unknown ids.
func (r *Registry) SetBlur(id string, blur bool) bool {
	src, ok := r.Get(id)
	if !ok {
		return false
	}
	src.setBlur(blur)
	return true
}
