package muxer_test

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"switchyard/internal/muxer"
)

func testFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, 16, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			frame.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 28), A: 255})
		}
	}
	return frame
}

func TestPreviewKeepsLatestFrameCopy(t *testing.T) {
	sink := muxer.NewPreview()
	if _, ok := sink.Frame(); ok {
		t.Fatal("empty preview reported a frame")
	}

	original := testFrame()
	if err := sink.WriteFrame(original); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	// Mutating the caller's buffer must not reach the stored copy.
	original.SetRGBA(0, 0, color.RGBA{B: 255, A: 255})

	kept, ok := sink.Frame()
	if !ok {
		t.Fatal("preview lost the frame")
	}
	if kept.RGBAAt(0, 0).B == 255 {
		t.Fatal("preview aliases the caller's frame buffer")
	}
}

func TestPreviewCounts(t *testing.T) {
	sink := muxer.NewPreview()
	if err := sink.WriteFrame(testFrame()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := sink.WriteAudio(make([]float32, 1600)); err != nil {
		t.Fatalf("WriteAudio: %v", err)
	}
	frames, samples := sink.Counts()
	if frames != 1 || samples != 1600 {
		t.Fatalf("Counts = %d frames/%d samples, want 1/1600", frames, samples)
	}
}

func TestPreviewSnapshotWritesPNG(t *testing.T) {
	sink := muxer.NewPreview()
	path := filepath.Join(t.TempDir(), "snaps", "frame.png")

	if err := sink.Snapshot(path); err == nil {
		t.Fatal("Snapshot succeeded with no frame written")
	}

	if err := sink.WriteFrame(testFrame()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := sink.Snapshot(path); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat snapshot: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("snapshot file is empty")
	}
}

func TestPreviewRejectsWritesAfterClose(t *testing.T) {
	sink := muxer.NewPreview()
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sink.WriteFrame(testFrame()); err == nil {
		t.Fatal("WriteFrame succeeded after Close")
	}
	if err := sink.WriteAudio(make([]float32, 4)); err == nil {
		t.Fatal("WriteAudio succeeded after Close")
	}
}
