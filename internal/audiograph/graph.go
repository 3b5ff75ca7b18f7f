package audiograph

import (
	"fmt"
	"log/slog"
	"sync"

	"switchyard/internal/logging"
	"switchyard/internal/services"
	"switchyard/internal/source"
)

// MixBus is the persistent summing bus. It is created once per session and
// survives every scene change; only process shutdown tears it down.
type MixBus struct {
	SampleRate int
	Channels   int
}

// Tap connects one source's audio tracks to the bus. The tap object is
// stable: reconciles for unrelated sources never replace it, so gain state
// and the underlying track connections carry from tick to tick while the
// source stays active.
type Tap struct {
	sourceID string
	label    string

	mu     sync.Mutex
	tracks []source.Track
	gain   float64
}

// SourceID returns the id of the source feeding this tap.
func (t *Tap) SourceID() string { return t.sourceID }

// SetGain sets the tap's linear gain. Values at or below zero silence the
// tap without disconnecting it.
func (t *Tap) SetGain(gain float64) {
	t.mu.Lock()
	t.gain = gain
	t.mu.Unlock()
}

// Gain returns the current linear gain.
func (t *Tap) Gain() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gain
}

// live reports whether any underlying track is currently enabled.
func (t *Tap) live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, track := range t.tracks {
		if track.Enabled() {
			return true
		}
	}
	return false
}

// mixInto sums the tap's enabled tracks into dst, applying gain. Tracks that
// produce fewer samples than requested contribute silence for the remainder.
func (t *Tap) mixInto(dst, scratch []float32) {
	t.mu.Lock()
	tracks := t.tracks
	gain := t.gain
	t.mu.Unlock()
	if gain <= 0 {
		return
	}
	for _, track := range tracks {
		if !track.Enabled() {
			continue
		}
		n := track.ReadPCM(scratch[:len(dst)])
		for i := 0; i < n; i++ {
			dst[i] += scratch[i] * float32(gain)
		}
	}
}

// TapInfo is a read-only snapshot of one tap for status reporting.
type TapInfo struct {
	SourceID string  `json:"source_id"`
	Label    string  `json:"label"`
	Gain     float64 `json:"gain"`
	Live     bool    `json:"live"`
}

// Graph owns the mix bus and the set of taps. All methods are safe for
// concurrent use, though in practice the session's tick loop is the only
// writer.
type Graph struct {
	logger *slog.Logger

	mu      sync.Mutex
	bus     *MixBus
	taps    map[string]*Tap
	scratch []float32
}

// New constructs an empty graph. The bus is created lazily by EnsureBus.
func New(logger *slog.Logger) *Graph {
	return &Graph{
		logger: logging.NewComponentLogger(logger, "audiograph"),
		taps:   make(map[string]*Tap),
	}
}

// EnsureBus creates the mix bus on first call and is a no-op afterwards.
// Invalid parameters are fatal: without a bus there is no session. A second
// call with different parameters is a wiring bug and is rejected.
func (g *Graph) EnsureBus(sampleRate, channels int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.bus != nil {
		if g.bus.SampleRate != sampleRate || g.bus.Channels != channels {
			return services.Wrap(services.ErrConfiguration, "audiograph", "ensure bus",
				fmt.Sprintf("bus already exists at %d Hz/%d ch", g.bus.SampleRate, g.bus.Channels), nil)
		}
		return nil
	}
	if sampleRate <= 0 || channels <= 0 {
		return services.Wrap(services.ErrFatalResource, "audiograph", "ensure bus",
			fmt.Sprintf("invalid bus parameters %d Hz/%d ch", sampleRate, channels), nil)
	}
	g.bus = &MixBus{SampleRate: sampleRate, Channels: channels}
	g.logger.Info("mix bus created",
		logging.Int("sample_rate", sampleRate),
		logging.Int("channels", channels))
	return nil
}

// Bus returns the bus parameters, or nil before EnsureBus.
func (g *Graph) Bus() *MixBus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bus
}

// Reconcile diffs the active set, the sources currently holding stage slots,
// against the current taps: audio-bearing arrivals are connected, taps whose
// source left the set are disconnected, and taps for sources present in both
// sets are left untouched so their identity and gain survive. Mute state
// never enters the diff; muted sources keep their tap and contribute silence
// through disabled tracks.
func (g *Graph) Reconcile(sources []*source.Source) {
	g.mu.Lock()
	defer g.mu.Unlock()

	desired := make(map[string]*source.Source, len(sources))
	for _, src := range sources {
		if src != nil && src.HasAudio() {
			desired[src.ID] = src
		}
	}

	for id, src := range desired {
		if _, ok := g.taps[id]; ok {
			continue
		}
		g.taps[id] = &Tap{
			sourceID: id,
			label:    src.Label,
			tracks:   src.Tracks(),
			gain:     1,
		}
		g.logger.Info("tap connected", logging.String(logging.FieldSourceID, id))
	}

	for id := range g.taps {
		if _, ok := desired[id]; !ok {
			delete(g.taps, id)
			g.logger.Info("tap disconnected", logging.String(logging.FieldSourceID, id))
		}
	}
}

// DisconnectSource removes the tap for id if one exists. Disconnecting an
// unknown id is not an error; removal paths may race a reconcile that
// already dropped it.
func (g *Graph) DisconnectSource(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.taps[id]; ok {
		delete(g.taps, id)
		g.logger.Info("tap disconnected", logging.String(logging.FieldSourceID, id))
	}
}

// Tap returns the live tap for a source id, if connected.
func (g *Graph) Tap(id string) (*Tap, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	tap, ok := g.taps[id]
	return tap, ok
}

// Taps returns a stable-order snapshot for status reporting.
func (g *Graph) Taps() []TapInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]TapInfo, 0, len(g.taps))
	for _, tap := range g.taps {
		out = append(out, TapInfo{
			SourceID: tap.sourceID,
			Label:    tap.label,
			Gain:     tap.Gain(),
			Live:     tap.live(),
		})
	}
	return out
}

// MixInto zeroes dst and sums every connected tap into it, clamping the
// result to [-1, 1]. With no live taps the output quantum is pure silence.
func (g *Graph) MixInto(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}

	g.mu.Lock()
	if len(g.scratch) < len(dst) {
		g.scratch = make([]float32, len(dst))
	}
	scratch := g.scratch
	taps := make([]*Tap, 0, len(g.taps))
	for _, tap := range g.taps {
		taps = append(taps, tap)
	}
	g.mu.Unlock()

	for _, tap := range taps {
		tap.mixInto(dst, scratch)
	}
	for i, sample := range dst {
		if sample > 1 {
			dst[i] = 1
		} else if sample < -1 {
			dst[i] = -1
		}
	}
}

// Close drops every tap. Track lifecycles belong to the registry, so taps
// are detached rather than closed.
func (g *Graph) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.taps = make(map[string]*Tap)
	g.bus = nil
}
