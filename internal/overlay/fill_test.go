package overlay

import (
	"testing"

	"github.com/fogleman/gg"
)

func fillAlpha(t *testing.T, bg Background) uint32 {
	t.Helper()
	dc := gg.NewContext(8, 8)
	setFill(dc, bg)
	dc.DrawRectangle(0, 0, 8, 8)
	dc.Fill()
	_, _, _, a := dc.Image().At(4, 4).RGBA()
	return a
}

func TestSetFillHonorsExplicitTransparency(t *testing.T) {
	if a := fillAlpha(t, Background{Color: "#ff0000", Opacity: 0}); a != 0 {
		t.Fatalf("alpha = %d, want 0 for an explicitly transparent background", a)
	}
}

func TestSetFillZeroValueIsOpaque(t *testing.T) {
	if a := fillAlpha(t, Background{}); a != 0xffff {
		t.Fatalf("alpha = %d, want opaque for the zero-value background", a)
	}
}

func TestSetFillClampsOpacity(t *testing.T) {
	if a := fillAlpha(t, Background{Color: "#ffffff", Opacity: 3}); a != 0xffff {
		t.Fatalf("alpha = %d, want clamped to opaque", a)
	}
	if a := fillAlpha(t, Background{Color: "#ffffff", Opacity: -1}); a != 0 {
		t.Fatalf("alpha = %d, want clamped to transparent", a)
	}
}
