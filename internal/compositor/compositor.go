package compositor

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/fogleman/gg"

	"switchyard/internal/layout"
	"switchyard/internal/logging"
	"switchyard/internal/overlay"
	"switchyard/internal/render"
	"switchyard/internal/services"
	"switchyard/internal/source"
)

// FrameTransform is a frame-in frame-out effect stage. The compositor runs it
// over sources flagged for blur; swapping the implementation changes the
// effect without touching composition.
type FrameTransform func(image.Image) image.Image

// Stage selects what is on screen: the layout mode and up to two staged
// source ids in slot order.
type Stage struct {
	Layout layout.Mode `json:"layout"`
	Staged []string    `json:"staged"`
}

// Input is everything one tick needs to produce a frame. The session builds
// it from snapshots at tick start, so nothing here mutates mid-render.
type Input struct {
	Sources []*source.Source
	Stage   Stage
	Overlay overlay.Settings
}

var canvasBackground = color.RGBA{R: 12, G: 12, B: 16, A: 255}

// Compositor turns a tick input into a finished program frame. It owns a
// single reused canvas; the returned frame aliases that buffer and is only
// valid until the next RenderFrame call.
type Compositor struct {
	logger   *slog.Logger
	canvas   *render.Canvas
	overlays *overlay.Renderer
	faces    *render.FaceCache
	blur     FrameTransform
}

// New allocates the render target. Failing to build the canvas or load the
// label font is fatal: there is no session without a render target.
func New(width, height int, overlays *overlay.Renderer, logger *slog.Logger) (*Compositor, error) {
	if width <= 0 || height <= 0 {
		return nil, services.Wrap(services.ErrFatalResource, "compositor", "create canvas",
			"canvas dimensions must be positive", nil)
	}
	faces, err := render.NewFaceCache()
	if err != nil {
		return nil, services.Wrap(services.ErrFatalResource, "compositor", "load font", "", err)
	}
	return &Compositor{
		logger:   logging.NewComponentLogger(logger, "compositor"),
		canvas:   render.NewCanvas(width, height),
		overlays: overlays,
		faces:    faces,
		blur:     func(img image.Image) image.Image { return render.BoxBlur(img, 6) },
	}, nil
}

// SetBlurTransform swaps the effect stage applied to blur-flagged sources.
// A nil transform disables the effect.
func (c *Compositor) SetBlurTransform(t FrameTransform) {
	c.blur = t
}

// RenderFrame composes one program frame. Staged ids without a matching
// source and sources without a decoded frame yet are skipped for the tick;
// zero drawable sources produces the standby card rather than an error. A
// panic anywhere in composition is confined to this tick.
func (c *Compositor) RenderFrame(in Input) (frame *image.RGBA) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("render tick panicked", logging.Any("panic", r))
			frame = c.canvas.RGBA
		}
	}()

	byID := make(map[string]*source.Source, len(in.Sources))
	for _, src := range in.Sources {
		if src != nil {
			byID[src.ID] = src
		}
	}

	type drawable struct {
		src   *source.Source
		frame image.Image
	}
	var drawables []drawable
	var subjects []layout.Subject
	for _, id := range in.Stage.Staged {
		if len(drawables) == 2 {
			break
		}
		src, ok := byID[id]
		if !ok {
			c.logger.Warn("staged id has no source, skipping",
				logging.String(logging.FieldSourceID, id))
			continue
		}
		img, ok := src.CurrentFrame()
		if !ok {
			continue
		}
		drawables = append(drawables, drawable{src: src, frame: img})
		subjects = append(subjects, layout.Subject{ID: src.ID, Type: src.Type})
	}

	c.canvas.Clear(canvasBackground)

	if len(drawables) == 0 {
		c.drawStandbyCard()
		c.overlays.Draw(c.canvas, in.Overlay)
		return c.canvas.RGBA
	}

	bounds := c.canvas.Bounds()
	for _, p := range layout.Arrange(in.Stage.Layout, subjects, bounds.Dx(), bounds.Dy()) {
		d := drawables[p.Index]
		img := d.frame
		if d.src.Blur() && c.blur != nil {
			img = c.blur(img)
		}
		if p.CircleRadius > 0 {
			c.canvas.BlitCircle(img, p.Rect, p.CircleRadius)
		} else {
			c.canvas.Blit(img, p.Rect, p.Fit)
		}
		if !p.NameTag.Empty() {
			c.drawNameTag(p.NameTag, d.src.Label)
		}
	}

	// Filters adjust source video only; overlays draw on top unfiltered.
	c.canvas.Apply(in.Overlay.Filters)
	c.overlays.Draw(c.canvas, in.Overlay)
	return c.canvas.RGBA
}

// drawStandbyCard fills the frame with a quiet placeholder so downstream
// consumers always receive valid video.
func (c *Compositor) drawStandbyCard() {
	bounds := c.canvas.Bounds()
	cw, ch := float64(bounds.Dx()), float64(bounds.Dy())
	dc := gg.NewContextForRGBA(c.canvas.RGBA)

	face := c.faces.Face(ch * 0.05)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	dc.SetRGBA(0.55, 0.57, 0.62, 1)
	dc.DrawStringAnchored("standing by", cw/2, ch/2, 0.5, 0.5)
}

func (c *Compositor) drawNameTag(rect image.Rectangle, label string) {
	if label == "" {
		return
	}
	dc := gg.NewContextForRGBA(c.canvas.RGBA)
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())

	dc.SetRGBA(0.05, 0.05, 0.08, 0.9)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	face := c.faces.Face(h * 0.55)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
}
