package source

import (
	"fmt"
	"image"
	"strings"
	"sync"
)

// Type classifies a live source.
type Type string

const (
	TypeCamera Type = "camera"
	TypeScreen Type = "screen"
	TypeGuest  Type = "guest"
)

// ParseType converts user input into a Type.
func ParseType(value string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(value))) {
	case TypeCamera:
		return TypeCamera, nil
	case TypeScreen:
		return TypeScreen, nil
	case TypeGuest:
		return TypeGuest, nil
	default:
		return "", fmt.Errorf("unknown source type %q", value)
	}
}

// Track is one pulled PCM audio feed belonging to a source. Samples are
// interleaved float32 in [-1, 1]. ReadPCM fills dst with up to len(dst)
// samples and returns how many were written; a track that has nothing ready
// returns 0 and the caller treats the gap as silence.
//
// Muting works by disabling the track, not by detaching it from the mix bus;
// a disabled track stays connected and is simply skipped while summing.
type Track interface {
	ReadPCM(dst []float32) int
	Enabled() bool
	SetEnabled(enabled bool)
	Close() error
}

// frameSlot is a single-slot mailbox holding the most recent decoded frame.
// Producers overwrite, readers poll; nobody blocks. Frames are shared by
// reference and must not be mutated after publication.
type frameSlot struct {
	mu    sync.Mutex
	frame image.Image
	seq   uint64
}

func (s *frameSlot) publish(frame image.Image) {
	if frame == nil {
		return
	}
	s.mu.Lock()
	s.frame = frame
	s.seq++
	s.mu.Unlock()
}

func (s *frameSlot) current() (image.Image, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return nil, 0, false
	}
	return s.frame, s.seq, true
}

// Source is a live audio/video producer with a stable id. The registry owns
// the Source; the compositor and audio graph hold read references only.
type Source struct {
	ID    string
	Type  Type
	Label string

	mu     sync.Mutex
	muted  bool
	blur   bool
	tracks []Track

	slot frameSlot
}

// PublishFrame stores the latest decoded frame. Called by the producer side
// (capture loop, simulator) whenever a new frame is ready.
func (s *Source) PublishFrame(frame image.Image) {
	s.slot.publish(frame)
}

// CurrentFrame returns the most recent published frame. The boolean is false
// until the first frame arrives; callers treat that as "not drawable yet".
func (s *Source) CurrentFrame() (image.Image, bool) {
	frame, _, ok := s.slot.current()
	return frame, ok
}

// FrameSeq returns the sequence number of the latest frame, for staleness
// diagnostics.
func (s *Source) FrameSeq() uint64 {
	_, seq, _ := s.slot.current()
	return seq
}

// Tracks returns a snapshot of the source's audio tracks.
func (s *Source) Tracks() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// HasAudio reports whether the source carries at least one audio track.
func (s *Source) HasAudio() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tracks) > 0
}

// Muted reports the mute flag.
func (s *Source) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Blur reports whether the optional blur transform applies to this source.
func (s *Source) Blur() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blur
}

func (s *Source) setMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	tracks := make([]Track, len(s.tracks))
	copy(tracks, s.tracks)
	s.mu.Unlock()
	// Disable the underlying tracks rather than touching mix-bus taps; this
	// keeps the graph patched and avoids pops on unmute.
	for _, track := range tracks {
		track.SetEnabled(!muted)
	}
}

func (s *Source) setBlur(blur bool) {
	s.mu.Lock()
	s.blur = blur
	s.mu.Unlock()
}

func (s *Source) closeTracks() {
	s.mu.Lock()
	tracks := s.tracks
	s.tracks = nil
	s.mu.Unlock()
	for _, track := range tracks {
		_ = track.Close()
	}
}
