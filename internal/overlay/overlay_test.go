package overlay_test

import (
	"image/color"
	"testing"

	"switchyard/internal/assets"
	"switchyard/internal/logging"
	"switchyard/internal/overlay"
	"switchyard/internal/render"
)

func newTestRenderer(t *testing.T) *overlay.Renderer {
	t.Helper()
	r, err := overlay.NewRenderer(assets.NewLibrary(logging.NewNop()), logging.NewNop())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestSplitItemsDropsBlankLines(t *testing.T) {
	items := overlay.SplitItems("a\n\nb")
	if len(items) != 2 {
		t.Fatalf("SplitItems returned %d items, want 2: %v", len(items), items)
	}
	if items[0] != "a" || items[1] != "b" {
		t.Fatalf("SplitItems = %v, want [a b]", items)
	}
}

func TestParseCorner(t *testing.T) {
	corner, err := overlay.ParseCorner(" Bottom-Right ")
	if err != nil {
		t.Fatalf("ParseCorner: %v", err)
	}
	if corner != overlay.CornerBottomRight {
		t.Fatalf("ParseCorner = %q, want %q", corner, overlay.CornerBottomRight)
	}
	if _, err := overlay.ParseCorner("middle"); err == nil {
		t.Fatal("ParseCorner accepted an unknown placement")
	}
}

func TestActiveListSelectsByID(t *testing.T) {
	b := overlay.BulletLists{
		ActiveID: "two",
		Lists: []overlay.BulletList{
			{ID: "one", Title: "First"},
			{ID: "two", Title: "Second"},
		},
	}
	list, ok := b.ActiveList()
	if !ok || list.Title != "Second" {
		t.Fatalf("ActiveList = %+v ok=%v, want Second", list, ok)
	}

	b.ActiveID = "missing"
	if _, ok := b.ActiveList(); ok {
		t.Fatal("ActiveList found a list for an unknown id")
	}
}

func TestDefaultSettingsHideEverything(t *testing.T) {
	s := overlay.DefaultSettings()
	if s.Logo.Show || s.Banner.Show || s.LowerThird.Show || s.Ticker.Show ||
		s.Countdown.Show || s.Text.Show || s.Bullets.Show {
		t.Fatalf("default settings have a visible element: %+v", s)
	}
	if s.Fullscreen.Mode != overlay.FullscreenNone {
		t.Fatalf("default fullscreen mode = %q, want none", s.Fullscreen.Mode)
	}
}

func TestDrawBannerMarksPixels(t *testing.T) {
	r := newTestRenderer(t)
	canvas := render.NewCanvas(320, 180)
	canvas.Clear(color.RGBA{A: 255})
	before := clonePixels(canvas)

	s := overlay.DefaultSettings()
	s.Banner.Show = true
	s.Banner.Text = "On Air"
	r.Draw(canvas, s)

	if pixelsEqual(before, canvas.RGBA.Pix) {
		t.Fatal("banner draw left the canvas untouched")
	}
}

func TestDrawHiddenSettingsLeavesCanvasUntouched(t *testing.T) {
	r := newTestRenderer(t)
	canvas := render.NewCanvas(320, 180)
	canvas.Clear(color.RGBA{A: 255})
	before := clonePixels(canvas)

	r.Draw(canvas, overlay.DefaultSettings())

	if !pixelsEqual(before, canvas.RGBA.Pix) {
		t.Fatal("hidden overlays modified the canvas")
	}
}

func TestDrawProceduralStyles(t *testing.T) {
	r := newTestRenderer(t)
	for _, style := range []string{overlay.StyleBrackets, overlay.StyleWave, overlay.StyleVignette} {
		canvas := render.NewCanvas(320, 180)
		canvas.Clear(color.RGBA{A: 255})
		before := clonePixels(canvas)

		s := overlay.DefaultSettings()
		s.Fullscreen = overlay.Fullscreen{Mode: overlay.FullscreenProcedural, Style: style}
		r.Draw(canvas, s)

		if pixelsEqual(before, canvas.RGBA.Pix) {
			t.Fatalf("style %q left the canvas untouched", style)
		}
	}
}

func clonePixels(c *render.Canvas) []byte {
	out := make([]byte, len(c.RGBA.Pix))
	copy(out, c.RGBA.Pix)
	return out
}

func pixelsEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
