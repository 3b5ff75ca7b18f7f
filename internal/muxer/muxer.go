package muxer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

// Muxer consumes finished program output. The session calls WriteFrame once
// per tick and WriteAudio once per audio quantum, always from the tick
// goroutine. Implementations must copy anything they keep: both buffers are
// reused by the caller.
type Muxer interface {
	WriteFrame(frame *image.RGBA) error
	WriteAudio(samples []float32) error
	Close() error
}

// Preview is the in-process sink used when no downstream is wired: it keeps
// the latest frame for snapshots and counts what flowed through.
type Preview struct {
	mu      sync.Mutex
	frame   *image.RGBA
	frames  uint64
	samples uint64
	closed  bool
}

// NewPreview constructs an empty preview sink.
func NewPreview() *Preview {
	return &Preview{}
}

// WriteFrame stores a copy of the frame as the latest preview image.
func (p *Preview) WriteFrame(frame *image.RGBA) error {
	if frame == nil {
		return nil
	}
	copied := image.NewRGBA(frame.Bounds())
	copy(copied.Pix, frame.Pix)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("preview sink closed")
	}
	p.frame = copied
	p.frames++
	return nil
}

// WriteAudio counts samples; preview has no audio output device.
func (p *Preview) WriteAudio(samples []float32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("preview sink closed")
	}
	p.samples += uint64(len(samples))
	return nil
}

// Close marks the sink closed; further writes fail.
func (p *Preview) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Frame returns the most recent frame, or false before the first write.
func (p *Preview) Frame() (*image.RGBA, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame, p.frame != nil
}

// Counts reports frames and audio samples written so far.
func (p *Preview) Counts() (frames, samples uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames, p.samples
}

// Snapshot encodes the latest frame as PNG at path.
func (p *Preview) Snapshot(path string) error {
	frame, ok := p.Frame()
	if !ok {
		return fmt.Errorf("no frame rendered yet")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, frame); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
