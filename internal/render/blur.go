package render

import "image"

// BoxBlur returns a blurred copy of src using a two-pass box filter. It is
// the default background-blur effect stage; anything implementing the same
// frame-in frame-out shape can replace it upstream of the compositor.
func BoxBlur(src image.Image, radius int) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(b)
	if radius <= 0 {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out.Set(x, y, src.At(x, y))
			}
		}
		return out
	}

	tmp := image.NewRGBA(b)
	w, h := b.Dx(), b.Dy()
	window := 2*radius + 1

	// Horizontal pass: src -> tmp.
	for y := 0; y < h; y++ {
		var sr, sg, sb, sa int
		for x := -radius; x <= radius; x++ {
			r, g, bl, a := rgbaAt(src, b, clampInt(x, 0, w-1), y)
			sr += r
			sg += g
			sb += bl
			sa += a
		}
		for x := 0; x < w; x++ {
			i := tmp.PixOffset(b.Min.X+x, b.Min.Y+y)
			tmp.Pix[i] = uint8(sr / window)
			tmp.Pix[i+1] = uint8(sg / window)
			tmp.Pix[i+2] = uint8(sb / window)
			tmp.Pix[i+3] = uint8(sa / window)

			or, og, ob, oa := rgbaAt(src, b, clampInt(x-radius, 0, w-1), y)
			nr, ng, nb, na := rgbaAt(src, b, clampInt(x+radius+1, 0, w-1), y)
			sr += nr - or
			sg += ng - og
			sb += nb - ob
			sa += na - oa
		}
	}

	// Vertical pass: tmp -> out.
	for x := 0; x < w; x++ {
		var sr, sg, sb, sa int
		for y := -radius; y <= radius; y++ {
			i := tmp.PixOffset(b.Min.X+x, b.Min.Y+clampInt(y, 0, h-1))
			sr += int(tmp.Pix[i])
			sg += int(tmp.Pix[i+1])
			sb += int(tmp.Pix[i+2])
			sa += int(tmp.Pix[i+3])
		}
		for y := 0; y < h; y++ {
			i := out.PixOffset(b.Min.X+x, b.Min.Y+y)
			out.Pix[i] = uint8(sr / window)
			out.Pix[i+1] = uint8(sg / window)
			out.Pix[i+2] = uint8(sb / window)
			out.Pix[i+3] = uint8(sa / window)

			oi := tmp.PixOffset(b.Min.X+x, b.Min.Y+clampInt(y-radius, 0, h-1))
			ni := tmp.PixOffset(b.Min.X+x, b.Min.Y+clampInt(y+radius+1, 0, h-1))
			sr += int(tmp.Pix[ni]) - int(tmp.Pix[oi])
			sg += int(tmp.Pix[ni+1]) - int(tmp.Pix[oi+1])
			sb += int(tmp.Pix[ni+2]) - int(tmp.Pix[oi+2])
			sa += int(tmp.Pix[ni+3]) - int(tmp.Pix[oi+3])
		}
	}
	return out
}

func rgbaAt(src image.Image, b image.Rectangle, x, y int) (int, int, int, int) {
	r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return int(r >> 8), int(g >> 8), int(bl >> 8), int(a >> 8)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
