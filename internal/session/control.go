package session

import (
	"context"
	"fmt"
	"time"

	"switchyard/internal/audiograph"
	"switchyard/internal/compositor"
	"switchyard/internal/layout"
	"switchyard/internal/logging"
	"switchyard/internal/overlay"
	"switchyard/internal/services"
	"switchyard/internal/source"
)

// Status is the externally visible session state.
type Status struct {
	Running   bool          `json:"running"`
	Uptime    time.Duration `json:"uptime"`
	Ticks     uint64        `json:"ticks"`
	Layout    string        `json:"layout"`
	Staged    []string      `json:"staged"`
	Sources   int           `json:"sources"`
	Taps      int           `json:"taps"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	FPS       int           `json:"fps"`
	Hotplug   bool          `json:"hotplug"`
	LastEvent string        `json:"last_event,omitempty"`
}

// SourceInfo is a per-source status row.
type SourceInfo struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Muted    bool   `json:"muted"`
	Blur     bool   `json:"blur"`
	HasAudio bool   `json:"has_audio"`
	HasVideo bool   `json:"has_video"`
	Staged   bool   `json:"staged"`
}

// Status reports the current session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	stage := s.stage
	staged := append([]string(nil), s.stage.Staged...)
	var lastEvent string
	if n := len(s.events); n > 0 {
		ev := s.events[n-1]
		verb := "removed"
		if ev.Added {
			verb = "added"
		}
		lastEvent = fmt.Sprintf("%s %s", ev.Device, verb)
	}
	s.mu.Unlock()

	var uptime time.Duration
	if s.running.Load() {
		uptime = time.Since(s.started)
	}
	return Status{
		Running:   s.running.Load(),
		Uptime:    uptime,
		Ticks:     s.ticks.Load(),
		Layout:    string(stage.Layout),
		Staged:    staged,
		Sources:   s.registry.Len(),
		Taps:      len(s.graph.Taps()),
		Width:     s.cfg.Video.Width,
		Height:    s.cfg.Video.Height,
		FPS:       s.cfg.Video.FPS,
		Hotplug:   s.hotplug.Running(),
		LastEvent: lastEvent,
	}
}

// Sources lists every registered source with its flags.
func (s *Session) Sources() []SourceInfo {
	s.mu.Lock()
	staged := make(map[string]bool, len(s.stage.Staged))
	for _, id := range s.stage.Staged {
		staged[id] = true
	}
	s.mu.Unlock()

	list := s.registry.List()
	out := make([]SourceInfo, 0, len(list))
	for _, src := range list {
		_, hasVideo := src.CurrentFrame()
		out = append(out, SourceInfo{
			ID:       src.ID,
			Type:     string(src.Type),
			Label:    src.Label,
			Muted:    src.Muted(),
			Blur:     src.Blur(),
			HasAudio: src.HasAudio(),
			HasVideo: hasVideo,
			Staged:   staged[src.ID],
		})
	}
	return out
}

// Taps lists the mix-bus connections.
func (s *Session) Taps() []audiograph.TapInfo {
	return s.graph.Taps()
}

// Registry exposes the source registry for producers (simulators, capture).
func (s *Session) Registry() *source.Registry {
	return s.registry
}

// SetLayout switches the active layout mode and persists it as the default
// for the next session.
func (s *Session) SetLayout(mode string) error {
	parsed, err := layout.Parse(mode)
	if err != nil {
		return services.Wrap(services.ErrValidation, "session", "set layout", err.Error(), nil)
	}
	s.mu.Lock()
	s.stage.Layout = parsed
	s.mu.Unlock()

	if err := s.store.SaveStageLayout(context.Background(), string(parsed)); err != nil {
		s.logger.Warn("persisting layout", logging.Error(err))
	}
	s.logger.Info("layout changed", logging.String(logging.FieldLayout, string(parsed)))
	return nil
}

// SetStage replaces the staged source ids. At most two sources can share the
// stage; ids must reference registered sources.
func (s *Session) SetStage(ids []string) error {
	if len(ids) > 2 {
		return services.Wrap(services.ErrValidation, "session", "set stage",
			fmt.Sprintf("at most 2 sources can be staged, got %d", len(ids)), nil)
	}
	for _, id := range ids {
		if _, ok := s.registry.Get(id); !ok {
			return services.Wrap(services.ErrValidation, "session", "set stage",
				fmt.Sprintf("unknown source id %q", id), nil)
		}
	}
	s.mu.Lock()
	s.stage.Staged = append([]string(nil), ids...)
	s.mu.Unlock()

	s.logger.Info("stage changed", logging.Any("staged", ids))
	return nil
}

// Stage returns the current stage selection.
func (s *Session) Stage() compositor.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return compositor.Stage{
		Layout: s.stage.Layout,
		Staged: append([]string(nil), s.stage.Staged...),
	}
}

// SetMuted toggles a source's mute flag.
func (s *Session) SetMuted(id string, muted bool) error {
	if !s.registry.SetMuted(id, muted) {
		return services.Wrap(services.ErrValidation, "session", "set muted",
			fmt.Sprintf("unknown source id %q", id), nil)
	}
	return nil
}

// SetGain adjusts the mix gain of a source's tap. Only sources currently
// holding a stage slot have a tap to adjust.
func (s *Session) SetGain(id string, gain float64) error {
	if _, ok := s.registry.Get(id); !ok {
		return services.Wrap(services.ErrValidation, "session", "set gain",
			fmt.Sprintf("unknown source id %q", id), nil)
	}
	tap, ok := s.graph.Tap(id)
	if !ok {
		return services.Wrap(services.ErrValidation, "session", "set gain",
			fmt.Sprintf("source %q has no tap on the mix bus", id), nil)
	}
	tap.SetGain(gain)
	s.logger.Info("tap gain changed",
		logging.String(logging.FieldSourceID, id),
		logging.Float64("gain", gain))
	return nil
}

// SetBlur toggles a source's background-blur flag.
func (s *Session) SetBlur(id string, blur bool) error {
	if !s.registry.SetBlur(id, blur) {
		return services.Wrap(services.ErrValidation, "session", "set blur",
			fmt.Sprintf("unknown source id %q", id), nil)
	}
	return nil
}

// Overlay returns the current overlay settings snapshot.
func (s *Session) Overlay() overlay.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlays
}

// UpdateOverlay applies an edit to the overlay settings and persists the
// result. The mutation sees a copy; the live snapshot swaps atomically.
func (s *Session) UpdateOverlay(mutate func(*overlay.Settings)) error {
	s.mu.Lock()
	next := s.overlays
	mutate(&next)
	s.overlays = next
	s.mu.Unlock()

	if err := s.store.SaveOverlay(context.Background(), next); err != nil {
		return fmt.Errorf("persist overlay settings: %w", err)
	}
	return nil
}

// Snapshot writes the latest program frame as PNG. Only available while the
// preview sink is attached.
func (s *Session) Snapshot(path string) error {
	if s.preview == nil {
		return services.Wrap(services.ErrConfiguration, "session", "snapshot",
			"no preview sink attached", nil)
	}
	return s.preview.Snapshot(path)
}
