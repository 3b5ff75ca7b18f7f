package overlay

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// drawProcedural renders a fixed vector recipe keyed by style id. Unknown
// styles draw nothing; the editor only offers the known set.
func (r *Renderer) drawProcedural(dc *gg.Context, style string, cw, ch float64) {
	switch style {
	case StyleBrackets:
		drawBrackets(dc, cw, ch)
	case StyleWave:
		drawWave(dc, cw, ch)
	case StyleVignette:
		drawVignette(dc, cw, ch)
	}
}

// drawBrackets strokes L-shaped frame brackets in all four corners.
func drawBrackets(dc *gg.Context, cw, ch float64) {
	inset := cw * 0.03
	arm := math.Min(cw, ch) * 0.12
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.SetLineWidth(math.Max(3, cw*0.004))

	for _, corner := range [][4]float64{
		{inset, inset, 1, 1},
		{cw - inset, inset, -1, 1},
		{inset, ch - inset, 1, -1},
		{cw - inset, ch - inset, -1, -1},
	} {
		x, y, dx, dy := corner[0], corner[1], corner[2], corner[3]
		dc.MoveTo(x+arm*dx, y)
		dc.LineTo(x, y)
		dc.LineTo(x, y+arm*dy)
		dc.Stroke()
	}
}

// drawWave fills a translucent sine band across the lower quarter.
func drawWave(dc *gg.Context, cw, ch float64) {
	base := ch * 0.82
	amp := ch * 0.04
	period := cw / 2.5

	dc.MoveTo(0, base)
	for x := 0.0; x <= cw; x += 4 {
		dc.LineTo(x, base+amp*math.Sin(2*math.Pi*x/period))
	}
	dc.LineTo(cw, ch)
	dc.LineTo(0, ch)
	dc.ClosePath()
	dc.SetRGBA(0.11, 0.33, 0.6, 0.55)
	dc.FillPreserve()
	dc.SetRGBA(1, 1, 1, 0.8)
	dc.SetLineWidth(2)
	dc.Stroke()
}

// drawVignette darkens the frame edges with a radial falloff.
func drawVignette(dc *gg.Context, cw, ch float64) {
	cx, cy := cw/2, ch/2
	inner := math.Min(cw, ch) * 0.35
	outer := math.Hypot(cw, ch) / 2

	grad := gg.NewRadialGradient(cx, cy, inner, cx, cy, outer)
	grad.AddColorStop(0, color.RGBA{})
	grad.AddColorStop(1, color.RGBA{A: 170})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, cw, ch)
	dc.Fill()
}
