package render

import (
	"image"
	"image/color"
	xdraw "golang.org/x/image/draw"

	"switchyard/internal/layout"
)

// Canvas is the reusable render target. The backing RGBA buffer is allocated
// once and written in place every tick; a scratch buffer serves clipped
// blits. Canvas is not safe for concurrent use — the render loop owns it.
type Canvas struct {
	RGBA    *image.RGBA
	scratch *image.RGBA
}

// NewCanvas allocates a canvas of the given logical resolution.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{RGBA: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Bounds returns the canvas bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return c.RGBA.Bounds()
}

// Clear fills the whole canvas with a solid color.
func (c *Canvas) Clear(col color.RGBA) {
	pix := c.RGBA.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = col.A
	}
}

// Blit draws src into rect using the given fit policy. Cover crops the
// source to fill the rectangle; contain letterboxes it, leaving the canvas
// background visible in the bars.
func (c *Canvas) Blit(src image.Image, rect image.Rectangle, fit layout.Fit) {
	rect = rect.Intersect(c.RGBA.Bounds())
	if rect.Empty() || src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Empty() {
		return
	}

	switch fit {
	case layout.FitContain:
		dr := ContainRect(rect, sb.Dx(), sb.Dy())
		xdraw.ApproxBiLinear.Scale(c.RGBA, dr, src, sb, xdraw.Src, nil)
	default:
		crop := CoverCrop(sb, rect.Dx(), rect.Dy())
		xdraw.ApproxBiLinear.Scale(c.RGBA, rect, src, crop, xdraw.Src, nil)
	}
}

// BlitCircle draws src cover-fitted into rect, clipped to the inscribed
// circle of the given radius. Pixels outside the circle are untouched.
func (c *Canvas) BlitCircle(src image.Image, rect image.Rectangle, radius int) {
	rect = rect.Intersect(c.RGBA.Bounds())
	if rect.Empty() || src == nil || radius <= 0 {
		return
	}

	c.ensureScratch(rect.Dx(), rect.Dy())
	sr := image.Rect(0, 0, rect.Dx(), rect.Dy())
	crop := CoverCrop(src.Bounds(), rect.Dx(), rect.Dy())
	xdraw.ApproxBiLinear.Scale(c.scratch, sr, src, crop, xdraw.Src, nil)

	cx := float64(rect.Dx()) / 2
	cy := float64(rect.Dy()) / 2
	r2 := float64(radius) * float64(radius)
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			si := c.scratch.PixOffset(x, y)
			di := c.RGBA.PixOffset(rect.Min.X+x, rect.Min.Y+y)
			copy(c.RGBA.Pix[di:di+4], c.scratch.Pix[si:si+4])
		}
	}
}

func (c *Canvas) ensureScratch(w, h int) {
	if c.scratch == nil || c.scratch.Bounds().Dx() < w || c.scratch.Bounds().Dy() < h {
		c.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
}

// CoverCrop computes the centered sub-rectangle of src whose aspect ratio
// matches dstW×dstH, so scaling it fills the destination without distortion.
func CoverCrop(src image.Rectangle, dstW, dstH int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 || dstW == 0 || dstH == 0 {
		return src
	}
	// Compare aspect ratios with integer cross-multiplication.
	if sw*dstH > sh*dstW {
		// Source is wider: crop horizontally.
		cropW := sh * dstW / dstH
		x0 := src.Min.X + (sw-cropW)/2
		return image.Rect(x0, src.Min.Y, x0+cropW, src.Max.Y)
	}
	// Source is taller: crop vertically.
	cropH := sw * dstH / dstW
	y0 := src.Min.Y + (sh-cropH)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+cropH)
}

// ContainRect computes the largest rectangle with the source's aspect ratio
// that fits inside rect, centered.
func ContainRect(rect image.Rectangle, srcW, srcH int) image.Rectangle {
	if srcW == 0 || srcH == 0 {
		return rect
	}
	w, h := rect.Dx(), rect.Dy()
	outW := w
	outH := srcH * w / srcW
	if outH > h {
		outH = h
		outW = srcW * h / srcH
	}
	x0 := rect.Min.X + (w-outW)/2
	y0 := rect.Min.Y + (h-outH)/2
	return image.Rect(x0, y0, x0+outW, y0+outH)
}
