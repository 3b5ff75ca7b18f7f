package source_test

import (
	"image"
	"testing"

	"switchyard/internal/logging"
	"switchyard/internal/source"
)

func TestRegistryAddRemove(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())

	cam := reg.Add(source.TypeCamera, "cam")
	scr := reg.Add(source.TypeScreen, "screen")
	if reg.Len() != 2 {
		t.Fatalf("expected 2 sources, got %d", reg.Len())
	}

	list := reg.List()
	if len(list) != 2 || list[0].ID != cam.ID || list[1].ID != scr.ID {
		t.Fatalf("expected insertion order [cam, screen], got %v", list)
	}

	if !reg.Remove(cam.ID) {
		t.Fatal("expected removal to succeed")
	}
	if reg.Remove(cam.ID) {
		t.Fatal("second removal must report unknown id")
	}
	if _, ok := reg.Get(cam.ID); ok {
		t.Fatal("removed source must not be retrievable")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 source, got %d", reg.Len())
	}
}

func TestFrameMailboxPolling(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	src := reg.Add(source.TypeCamera, "cam")

	if _, ok := src.CurrentFrame(); ok {
		t.Fatal("new source must not be drawable before the first frame")
	}

	first := image.NewRGBA(image.Rect(0, 0, 4, 4))
	second := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.PublishFrame(first)
	src.PublishFrame(second)

	frame, ok := src.CurrentFrame()
	if !ok {
		t.Fatal("expected a frame after publish")
	}
	if frame.Bounds().Dx() != 8 {
		t.Fatalf("mailbox must hold the most recent frame, got bounds %v", frame.Bounds())
	}
	if src.FrameSeq() != 2 {
		t.Fatalf("expected sequence 2, got %d", src.FrameSeq())
	}
}

func TestMuteDisablesTracks(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	tone := source.NewToneTrack(440, 48000, 2)
	src := reg.Add(source.TypeGuest, "guest", tone)

	if !src.HasAudio() {
		t.Fatal("expected source to carry audio")
	}
	if !tone.Enabled() {
		t.Fatal("track should start enabled")
	}

	if !reg.SetMuted(src.ID, true) {
		t.Fatal("mute should succeed for known id")
	}
	if tone.Enabled() {
		t.Fatal("muting must disable the underlying track")
	}
	if !src.Muted() {
		t.Fatal("mute flag not recorded")
	}

	reg.SetMuted(src.ID, false)
	if !tone.Enabled() {
		t.Fatal("unmuting must re-enable the track")
	}
}

func TestRemoveClosesTracks(t *testing.T) {
	reg := source.NewRegistry(logging.NewNop())
	tone := source.NewToneTrack(440, 48000, 2)
	src := reg.Add(source.TypeCamera, "cam", tone)

	reg.Remove(src.ID)

	buf := make([]float32, 64)
	if n := tone.ReadPCM(buf); n != 0 {
		t.Fatalf("closed track must produce no samples, got %d", n)
	}
	if tone.Enabled() {
		t.Fatal("closed track must report disabled")
	}
}

func TestToneTrackProducesSamples(t *testing.T) {
	tone := source.NewToneTrack(440, 48000, 2)
	buf := make([]float32, 480)
	if n := tone.ReadPCM(buf); n != 480 {
		t.Fatalf("expected full buffer, got %d", n)
	}
	var nonZero bool
	for _, s := range buf {
		if s < -1 || s > 1 {
			t.Fatalf("sample %f out of range", s)
		}
		if s != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Fatal("expected non-silent output")
	}
	// Stereo interleave: both channels carry the same sample.
	if buf[0] != buf[1] {
		t.Fatalf("expected interleaved duplicate channels, got %f vs %f", buf[0], buf[1])
	}
}
