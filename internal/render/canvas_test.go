package render_test

import (
	"image"
	"image/color"
	"testing"

	"switchyard/internal/layout"
	"switchyard/internal/render"
)

func solidImage(w, h int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, col)
		}
	}
	return img
}

func TestCoverCrop(t *testing.T) {
	// 4:3 source into a 16:9 slot crops vertically.
	crop := render.CoverCrop(image.Rect(0, 0, 640, 480), 1280, 720)
	if crop.Dx() != 640 {
		t.Fatalf("wide crop must keep full width, got %d", crop.Dx())
	}
	if crop.Dy() != 360 {
		t.Fatalf("expected 360 crop height, got %d", crop.Dy())
	}
	if crop.Min.Y != 60 {
		t.Fatalf("crop must be vertically centered, got min %d", crop.Min.Y)
	}

	// 16:9 source into a square slot crops horizontally.
	crop = render.CoverCrop(image.Rect(0, 0, 1280, 720), 100, 100)
	if crop.Dy() != 720 || crop.Dx() != 720 {
		t.Fatalf("expected square crop, got %v", crop)
	}
}

func TestContainRect(t *testing.T) {
	// 4:3 source letterboxed into a 16:9 slot: pillarbox bars at the sides.
	dr := render.ContainRect(image.Rect(0, 0, 1280, 720), 640, 480)
	if dr.Dy() != 720 {
		t.Fatalf("contain must use full height, got %d", dr.Dy())
	}
	if dr.Dx() != 960 {
		t.Fatalf("expected 960 fitted width, got %d", dr.Dx())
	}
	if dr.Min.X != 160 {
		t.Fatalf("fitted rect must be centered, got min %d", dr.Min.X)
	}
}

func TestContainLeavesBarsUntouched(t *testing.T) {
	canvas := render.NewCanvas(160, 90)
	bg := color.RGBA{R: 10, G: 10, B: 10, A: 255}
	canvas.Clear(bg)

	// Tall source in a wide slot: pillarbox left and right.
	src := solidImage(90, 90, color.RGBA{R: 200, G: 0, B: 0, A: 255})
	canvas.Blit(src, canvas.Bounds(), layout.FitContain)

	if got := canvas.RGBA.RGBAAt(0, 45); got != bg {
		t.Fatalf("left bar must keep background, got %v", got)
	}
	if got := canvas.RGBA.RGBAAt(159, 45); got != bg {
		t.Fatalf("right bar must keep background, got %v", got)
	}
	if got := canvas.RGBA.RGBAAt(80, 45); got.R < 150 {
		t.Fatalf("center must carry source pixels, got %v", got)
	}
}

func TestCoverFillsRect(t *testing.T) {
	canvas := render.NewCanvas(160, 90)
	canvas.Clear(color.RGBA{A: 255})
	src := solidImage(90, 90, color.RGBA{R: 0, G: 200, B: 0, A: 255})
	canvas.Blit(src, canvas.Bounds(), layout.FitCover)

	for _, pt := range []image.Point{{0, 0}, {159, 89}, {80, 45}} {
		if got := canvas.RGBA.RGBAAt(pt.X, pt.Y); got.G < 150 {
			t.Fatalf("cover must fill %v, got %v", pt, got)
		}
	}
}

func TestBlitCircleClips(t *testing.T) {
	canvas := render.NewCanvas(100, 100)
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	canvas.Clear(bg)

	src := solidImage(50, 50, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	rect := image.Rect(10, 10, 90, 90)
	canvas.BlitCircle(src, rect, 40)

	if got := canvas.RGBA.RGBAAt(50, 50); got.R != 255 {
		t.Fatalf("circle center must carry source, got %v", got)
	}
	if got := canvas.RGBA.RGBAAt(11, 11); got != bg {
		t.Fatalf("rect corner outside the circle must keep background, got %v", got)
	}
}

func TestFiltersNeutralAndGrayscale(t *testing.T) {
	canvas := render.NewCanvas(2, 1)
	canvas.RGBA.SetRGBA(0, 0, color.RGBA{R: 200, G: 40, B: 90, A: 255})
	canvas.RGBA.SetRGBA(1, 0, color.RGBA{R: 10, G: 250, B: 30, A: 255})
	before := append([]uint8(nil), canvas.RGBA.Pix...)

	var zero render.Filters
	if !zero.IsNeutral() {
		t.Fatal("zero-value filters must be neutral")
	}
	canvas.Apply(zero)
	for i := range before {
		if canvas.RGBA.Pix[i] != before[i] {
			t.Fatal("neutral filter must not change pixels")
		}
	}

	canvas.Apply(render.Filters{Grayscale: true})
	for x := 0; x < 2; x++ {
		px := canvas.RGBA.RGBAAt(x, 0)
		if px.R != px.G || px.G != px.B {
			t.Fatalf("grayscale must equalize channels, got %v", px)
		}
	}
}

func TestBrightnessClamps(t *testing.T) {
	canvas := render.NewCanvas(1, 1)
	canvas.RGBA.SetRGBA(0, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	canvas.Apply(render.Filters{Brightness: 10, Contrast: 1, Saturation: 1})
	px := canvas.RGBA.RGBAAt(0, 0)
	if px.R != 255 || px.A != 255 {
		t.Fatalf("expected clamped white with alpha preserved, got %v", px)
	}
}

func TestBoxBlurUniformUnchanged(t *testing.T) {
	src := solidImage(16, 16, color.RGBA{R: 77, G: 88, B: 99, A: 255})
	out := render.BoxBlur(src, 3)
	if got := out.RGBAAt(8, 8); got.R != 77 || got.G != 88 || got.B != 99 {
		t.Fatalf("uniform image must survive blur, got %v", got)
	}
}

func TestBoxBlurSpreadsImpulse(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 9, 9))
	src.SetRGBA(4, 4, color.RGBA{R: 255, A: 255})
	out := render.BoxBlur(src, 2)
	if out.RGBAAt(4, 4).R == 255 {
		t.Fatal("impulse must be attenuated")
	}
	if out.RGBAAt(3, 4).R == 0 {
		t.Fatal("impulse must spread to neighbors")
	}
}

func TestFaceCacheReuse(t *testing.T) {
	cache, err := render.NewFaceCache()
	if err != nil {
		t.Fatalf("new face cache: %v", err)
	}
	a := cache.Face(24)
	b := cache.Face(24.2)
	if a == nil || b == nil {
		t.Fatal("expected faces")
	}
	if a != b {
		t.Fatal("sizes rounding to the same pixel value must share a face")
	}
	if c := cache.Face(48); c == a {
		t.Fatal("distinct sizes must not share a face")
	}
}
