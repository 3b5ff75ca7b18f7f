package audiograph_test

import (
	"testing"

	"switchyard/internal/audiograph"
	"switchyard/internal/logging"
	"switchyard/internal/services"
	"switchyard/internal/source"
)

func newAudioSource(t *testing.T, reg *source.Registry, label string) *source.Source {
	t.Helper()
	return reg.Add(source.TypeCamera, label, source.NewToneTrack(440, 48000, 2))
}

func TestEnsureBusIsIdempotent(t *testing.T) {
	g := audiograph.New(logging.NewNop())
	if err := g.EnsureBus(48000, 2); err != nil {
		t.Fatalf("EnsureBus: %v", err)
	}
	if err := g.EnsureBus(48000, 2); err != nil {
		t.Fatalf("repeated EnsureBus: %v", err)
	}
	bus := g.Bus()
	if bus == nil || bus.SampleRate != 48000 || bus.Channels != 2 {
		t.Fatalf("bus = %+v, want 48000 Hz/2 ch", bus)
	}
}

func TestEnsureBusRejectsInvalidParameters(t *testing.T) {
	g := audiograph.New(logging.NewNop())
	err := g.EnsureBus(0, 2)
	if err == nil {
		t.Fatal("EnsureBus accepted a zero sample rate")
	}
	if !services.IsFatal(err) {
		t.Fatalf("EnsureBus error = %v, want fatal resource marker", err)
	}
}

func TestReconcilePreservesSurvivingTapIdentity(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	keep := newAudioSource(t, reg, "keep")
	old := newAudioSource(t, reg, "old")
	fresh := newAudioSource(t, reg, "fresh")

	g := audiograph.New(logging.NewNop())
	g.Reconcile([]*source.Source{keep, old})

	before, ok := g.Tap(keep.ID)
	if !ok {
		t.Fatalf("no tap for %q after first reconcile", keep.Label)
	}
	before.SetGain(0.5)

	g.Reconcile([]*source.Source{keep, fresh})

	after, ok := g.Tap(keep.ID)
	if !ok {
		t.Fatalf("no tap for %q after second reconcile", keep.Label)
	}
	if after != before {
		t.Fatal("surviving source got a new tap object")
	}
	if after.Gain() != 0.5 {
		t.Fatalf("surviving tap gain = %v, want 0.5", after.Gain())
	}
	if _, ok := g.Tap(old.ID); ok {
		t.Fatal("departed source still has a tap")
	}
	if _, ok := g.Tap(fresh.ID); !ok {
		t.Fatal("arriving source has no tap")
	}
}

func TestReconcileSkipsVideoOnlySources(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	silent := reg.Add(source.TypeScreen, "screen")

	g := audiograph.New(logging.NewNop())
	g.Reconcile([]*source.Source{silent})

	if len(g.Taps()) != 0 {
		t.Fatalf("video-only source produced taps: %+v", g.Taps())
	}
}

func TestMutedSourceContributesSilence(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	src := newAudioSource(t, reg, "talker")

	g := audiograph.New(logging.NewNop())
	g.Reconcile([]*source.Source{src})

	buf := make([]float32, 256)
	g.MixInto(buf)
	if allZero(buf) {
		t.Fatal("unmuted tone mixed to silence")
	}

	if !reg.SetMuted(src.ID, true) {
		t.Fatal("SetMuted failed")
	}
	if _, ok := g.Tap(src.ID); !ok {
		t.Fatal("mute detached the tap")
	}
	g.MixInto(buf)
	if !allZero(buf) {
		t.Fatal("muted source still audible")
	}

	reg.SetMuted(src.ID, false)
	g.MixInto(buf)
	if allZero(buf) {
		t.Fatal("unmute did not restore audio")
	}
}

func TestMixClampsToUnitRange(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	src := newAudioSource(t, reg, "hot")

	g := audiograph.New(logging.NewNop())
	g.Reconcile([]*source.Source{src})
	tap, _ := g.Tap(src.ID)
	tap.SetGain(100)

	buf := make([]float32, 256)
	g.MixInto(buf)
	for i, sample := range buf {
		if sample > 1 || sample < -1 {
			t.Fatalf("sample %d = %v, outside [-1, 1]", i, sample)
		}
	}
}

func TestRegistryRemovalDisconnectsTapImmediately(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	g := audiograph.New(logging.NewNop())
	reg.SetRemoveHook(g.DisconnectSource)

	src := newAudioSource(t, reg, "leaver")
	g.Reconcile([]*source.Source{src})
	if _, ok := g.Tap(src.ID); !ok {
		t.Fatal("no tap after reconcile")
	}

	if !reg.Remove(src.ID) {
		t.Fatal("Remove failed")
	}
	// No reconcile between removal and the check; the hook alone drops it.
	if _, ok := g.Tap(src.ID); ok {
		t.Fatal("removed source still holds a tap")
	}
}

func TestDisconnectUnknownSourceIsHarmless(t *testing.T) {
	g := audiograph.New(logging.NewNop())
	g.DisconnectSource("no-such-id")
	if len(g.Taps()) != 0 {
		t.Fatalf("taps = %+v, want none", g.Taps())
	}
}

func allZero(buf []float32) bool {
	for _, sample := range buf {
		if sample != 0 {
			return false
		}
	}
	return true
}
