package source

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"switchyard/internal/logging"
)

// SimOptions describes the synthetic sources registered for demo sessions.
type SimOptions struct {
	Cameras    int
	Screens    int
	Tone       bool
	Width      int
	Height     int
	FPS        int
	SampleRate int
	Channels   int
}

// StartSim registers synthetic sources and starts their frame producers.
// Frames are produced out-of-band on their own goroutines; the render loop
// only ever polls completed results. The producers stop when ctx is canceled.
func StartSim(ctx context.Context, reg *Registry, opts SimOptions, logger *slog.Logger) []string {
	log := logging.NewComponentLogger(logger, "simulator")
	ids := make([]string, 0, opts.Cameras+opts.Screens)

	for i := 0; i < opts.Cameras; i++ {
		var tracks []Track
		if opts.Tone {
			// Stagger tone pitches so mixed output is audibly layered.
			tracks = append(tracks, NewToneTrack(220*math.Pow(1.5, float64(i)), opts.SampleRate, opts.Channels))
		}
		src := reg.Add(TypeCamera, fmt.Sprintf("sim-camera-%d", i+1), tracks...)
		ids = append(ids, src.ID)
		go runPattern(ctx, src, opts, barsPattern(i))
	}
	for i := 0; i < opts.Screens; i++ {
		src := reg.Add(TypeScreen, fmt.Sprintf("sim-screen-%d", i+1))
		ids = append(ids, src.ID)
		go runPattern(ctx, src, opts, gridPattern())
	}

	if len(ids) > 0 {
		log.Info("simulated sources started",
			logging.Int("cameras", opts.Cameras),
			logging.Int("screens", opts.Screens),
			logging.Bool("tone", opts.Tone),
		)
	}
	return ids
}

type patternFunc func(frame *image.RGBA, tick int)

func runPattern(ctx context.Context, src *Source, opts SimOptions, pattern patternFunc) {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 640, 360
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Fresh buffer per frame keeps the published image immutable.
			frame := image.NewRGBA(image.Rect(0, 0, width, height))
			pattern(frame, tick)
			src.PublishFrame(frame)
			tick++
		}
	}
}

// barsPattern renders vertical color bars with a scanning highlight, offset
// per camera index so two simulated cameras are visually distinct.
func barsPattern(index int) patternFunc {
	palette := []color.RGBA{
		{R: 192, G: 192, B: 192, A: 255},
		{R: 192, G: 192, B: 0, A: 255},
		{R: 0, G: 192, B: 192, A: 255},
		{R: 0, G: 192, B: 0, A: 255},
		{R: 192, G: 0, B: 192, A: 255},
		{R: 192, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 192, A: 255},
	}
	return func(frame *image.RGBA, tick int) {
		b := frame.Bounds()
		barWidth := b.Dx() / len(palette)
		if barWidth == 0 {
			barWidth = 1
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			c := palette[((x/barWidth)+index)%len(palette)]
			for y := b.Min.Y; y < b.Max.Y; y++ {
				frame.SetRGBA(x, y, c)
			}
		}
		// Moving scanline proves frames are advancing.
		scan := (tick * 4) % b.Dx()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			frame.SetRGBA(b.Min.X+scan, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
}

// gridPattern renders a dark slide-like grid, standing in for shared screen
// content with readable structure.
func gridPattern() patternFunc {
	return func(frame *image.RGBA, tick int) {
		b := frame.Bounds()
		bg := color.RGBA{R: 24, G: 26, B: 32, A: 255}
		line := color.RGBA{R: 70, G: 74, B: 84, A: 255}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if x%80 == 0 || y%60 == 0 {
					frame.SetRGBA(x, y, line)
				} else {
					frame.SetRGBA(x, y, bg)
				}
			}
		}
		// Blinking cursor block in the top-left cell.
		if (tick/15)%2 == 0 {
			for y := 20; y < 50 && y < b.Max.Y; y++ {
				for x := 20; x < 36 && x < b.Max.X; x++ {
					frame.SetRGBA(x, y, color.RGBA{R: 220, G: 220, B: 220, A: 255})
				}
			}
		}
	}
}

// ToneTrack is a sine generator used by simulated sources. It satisfies the
// Track contract: pulled PCM, enable flag for muting, idempotent Close.
type ToneTrack struct {
	freq       float64
	sampleRate int
	channels   int

	phase   float64
	enabled atomic.Bool
	closed  atomic.Bool
}

// NewToneTrack creates an enabled tone generator.
func NewToneTrack(freq float64, sampleRate, channels int) *ToneTrack {
	if channels <= 0 {
		channels = 2
	}
	if sampleRate <= 0 {
		sampleRate = 48000
	}
	t := &ToneTrack{freq: freq, sampleRate: sampleRate, channels: channels}
	t.enabled.Store(true)
	return t
}

// ReadPCM fills dst with interleaved sine samples. Closed tracks return 0.
func (t *ToneTrack) ReadPCM(dst []float32) int {
	if t.closed.Load() {
		return 0
	}
	step := 2 * math.Pi * t.freq / float64(t.sampleRate)
	frames := len(dst) / t.channels
	for i := 0; i < frames; i++ {
		sample := float32(0.25 * math.Sin(t.phase))
		t.phase += step
		for ch := 0; ch < t.channels; ch++ {
			dst[i*t.channels+ch] = sample
		}
	}
	if t.phase > 2*math.Pi {
		t.phase = math.Mod(t.phase, 2*math.Pi)
	}
	return frames * t.channels
}

// Enabled reports whether the track contributes to the mix.
func (t *ToneTrack) Enabled() bool { return t.enabled.Load() && !t.closed.Load() }

// SetEnabled flips the contribution flag without detaching the track.
func (t *ToneTrack) SetEnabled(enabled bool) { t.enabled.Store(enabled) }

// Close permanently silences the track.
func (t *ToneTrack) Close() error {
	t.closed.Store(true)
	return nil
}
