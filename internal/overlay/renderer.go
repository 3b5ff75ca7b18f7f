package overlay

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/text/unicode/norm"

	"switchyard/internal/assets"
	"switchyard/internal/layout"
	"switchyard/internal/logging"
	"switchyard/internal/render"
)

// Renderer draws the overlay stack above composited video. It owns the only
// piece of persistent overlay state, the ticker scroll offset; everything
// else is a pure function of the settings snapshot and the asset-ready set.
type Renderer struct {
	logger *slog.Logger
	assets *assets.Library
	faces  *render.FaceCache
	ticker tickerState
}

// NewRenderer constructs a renderer backed by the given asset library.
func NewRenderer(lib *assets.Library, logger *slog.Logger) (*Renderer, error) {
	faces, err := render.NewFaceCache()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		logger: logging.NewComponentLogger(logger, "overlay"),
		assets: lib,
		faces:  faces,
	}, nil
}

// Draw renders every enabled element bottom to top in fixed z-order:
// full-screen image/video, procedural style, freestyle text, ticker, logo,
// bullet list, banner, lower third, countdown. Elements whose assets are not
// ready are skipped this tick; nothing here blocks or errors.
func (r *Renderer) Draw(canvas *render.Canvas, s Settings) {
	bounds := canvas.Bounds()
	cw := float64(bounds.Dx())
	ch := float64(bounds.Dy())
	dc := gg.NewContextForRGBA(canvas.RGBA)

	r.drawFullscreen(dc, canvas, s.Fullscreen, cw, ch)
	r.drawFreestyle(dc, s.Text, cw, ch)
	r.drawTicker(dc, s.Ticker, cw, ch)
	r.drawLogo(canvas, s.Logo, cw, ch)
	r.drawBullets(dc, s.Bullets, cw, ch)
	r.drawBanner(dc, s.Banner, cw, ch)
	r.drawLowerThird(dc, s.LowerThird, cw, ch)
	r.drawCountdown(dc, s.Countdown, cw, ch)
}

// TickerOffset exposes the current scroll position for diagnostics.
func (r *Renderer) TickerOffset() float64 {
	return r.ticker.offset
}

func (r *Renderer) drawFullscreen(dc *gg.Context, canvas *render.Canvas, fs Fullscreen, cw, ch float64) {
	switch fs.Mode {
	case FullscreenImage, FullscreenVideo:
		img, ok := r.assetImage(fs.Asset)
		if !ok {
			return
		}
		canvas.Blit(img, canvas.Bounds(), layout.FitCover)
	case FullscreenProcedural:
		r.drawProcedural(dc, fs.Style, cw, ch)
	}
}

func (r *Renderer) drawFreestyle(dc *gg.Context, t Freestyle, cw, ch float64) {
	if !t.Show || strings.TrimSpace(t.Text) == "" {
		return
	}
	fontPx := ch * 0.04 * scaleOr1(t.Scale)
	lines := splitLines(t.Text)
	r.drawTextBox(dc, lines, fontPx, t.Background, t.Placement, cw, ch)
}

func (r *Renderer) drawTicker(dc *gg.Context, t Ticker, cw, ch float64) {
	text := norm.NFC.String(strings.TrimSpace(t.Text))
	if !t.Show || text == "" {
		return
	}
	fontPx := ch * 0.035 * scaleOr1(t.Scale)
	face := r.faces.Face(fontPx)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	textW, _ := dc.MeasureString(text)

	stripH := fontPx * 2.2
	top := ch - stripH
	setFill(dc, t.Background)
	dc.DrawRectangle(0, top, cw, stripH)
	dc.Fill()

	pos := r.ticker.advance(textW, cw)
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawString(text, pos, top+stripH/2+fontPx*0.35)
}

func (r *Renderer) drawLogo(canvas *render.Canvas, l Logo, cw, ch float64) {
	if !l.Show {
		return
	}
	img, ok := r.assetImage(l.Asset)
	if !ok {
		return
	}
	margin := float64(layout.Margin(int(cw)))
	w := cw * 0.10 * scaleOr1(l.Scale)
	sb := img.Bounds()
	h := w * float64(sb.Dy()) / float64(sb.Dx())
	if h > ch/3 {
		h = ch / 3
		w = h * float64(sb.Dx()) / float64(sb.Dy())
	}
	x, y := cornerOrigin(l.Placement, w, h, cw, ch, margin)
	canvas.Blit(img, image.Rect(int(x), int(y), int(x+w), int(y+h)), layout.FitContain)
}

func (r *Renderer) drawBullets(dc *gg.Context, b BulletLists, cw, ch float64) {
	if !b.Show {
		return
	}
	list, ok := b.ActiveList()
	if !ok {
		return
	}
	items := SplitItems(list.Items)
	if len(items) == 0 && strings.TrimSpace(list.Title) == "" {
		return
	}
	lines := make([]string, 0, len(items)+1)
	if title := strings.TrimSpace(list.Title); title != "" {
		lines = append(lines, title)
	}
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	fontPx := ch * 0.035 * scaleOr1(b.Scale)
	r.drawTextBox(dc, lines, fontPx, b.Background, b.Placement, cw, ch)
}

func (r *Renderer) drawBanner(dc *gg.Context, b Banner, cw, ch float64) {
	if !b.Show || strings.TrimSpace(b.Text) == "" {
		return
	}
	fontPx := ch * 0.045 * scaleOr1(b.Scale)
	r.drawTextBox(dc, []string{norm.NFC.String(strings.TrimSpace(b.Text))}, fontPx, b.Background, b.Placement, cw, ch)
}

func (r *Renderer) drawLowerThird(dc *gg.Context, lt LowerThird, cw, ch float64) {
	title := norm.NFC.String(strings.TrimSpace(lt.Title))
	subtitle := norm.NFC.String(strings.TrimSpace(lt.Subtitle))
	if !lt.Show || title == "" {
		return
	}
	scale := scaleOr1(lt.Scale)
	titlePx := ch * 0.045 * scale
	subPx := ch * 0.03 * scale
	pad := titlePx * 0.6
	margin := float64(layout.Margin(int(cw)))

	titleFace := r.faces.Face(titlePx)
	subFace := r.faces.Face(subPx)
	if titleFace == nil || subFace == nil {
		return
	}

	dc.SetFontFace(titleFace)
	width, _ := dc.MeasureString(title)
	height := titlePx * 1.4
	if subtitle != "" {
		dc.SetFontFace(subFace)
		if w, _ := dc.MeasureString(subtitle); w > width {
			width = w
		}
		height += subPx * 1.4
	}

	boxW := width + 2*pad
	boxH := height + 2*pad
	x := margin
	y := ch - margin - boxH

	setFill(dc, lt.Background)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 1)
	dc.SetFontFace(titleFace)
	dc.DrawString(title, x+pad, y+pad+titlePx)
	if subtitle != "" {
		dc.SetRGBA(0.85, 0.85, 0.85, 1)
		dc.SetFontFace(subFace)
		dc.DrawString(subtitle, x+pad, y+pad+titlePx*1.4+subPx)
	}
}

func (r *Renderer) drawCountdown(dc *gg.Context, c Countdown, cw, ch float64) {
	if !c.Show {
		return
	}
	remaining := c.Remaining
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining.Seconds())
	clock := fmt.Sprintf("%02d:%02d", total/60, total%60)

	digitPx := ch * 0.08
	titlePx := ch * 0.03
	titleFace := r.faces.Face(titlePx)
	digitFace := r.faces.Face(digitPx)
	if titleFace == nil || digitFace == nil {
		return
	}

	dc.SetFontFace(digitFace)
	clockW, _ := dc.MeasureString(clock)
	boxW := clockW + digitPx*1.2
	if boxW < cw*0.2 {
		boxW = cw * 0.2
	}
	boxH := digitPx*1.4 + titlePx*1.6
	x := (cw - boxW) / 2
	y := (ch - boxH) / 2

	setFill(dc, Background{Color: "#000000", Opacity: 0.7})
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 1)
	if title := strings.TrimSpace(c.Title); title != "" {
		dc.SetFontFace(titleFace)
		dc.DrawStringAnchored(norm.NFC.String(title), cw/2, y+titlePx*1.2, 0.5, 0.5)
	}
	dc.SetFontFace(digitFace)
	dc.DrawStringAnchored(clock, cw/2, y+titlePx*1.6+digitPx*0.7, 0.5, 0.5)
}

// drawTextBox renders lines into a content-sized box anchored at a corner.
func (r *Renderer) drawTextBox(dc *gg.Context, lines []string, fontPx float64, bg Background, corner Corner, cw, ch float64) {
	if len(lines) == 0 {
		return
	}
	face := r.faces.Face(fontPx)
	if face == nil {
		return
	}
	dc.SetFontFace(face)

	pad := fontPx * 0.6
	lineH := fontPx * 1.4
	var maxW float64
	for i, line := range lines {
		lines[i] = norm.NFC.String(line)
		if w, _ := dc.MeasureString(lines[i]); w > maxW {
			maxW = w
		}
	}

	boxW := maxW + 2*pad
	boxH := float64(len(lines))*lineH + 2*pad
	margin := float64(layout.Margin(int(cw)))
	x, y := cornerOrigin(corner, boxW, boxH, cw, ch, margin)

	setFill(dc, bg)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 1)
	for i, line := range lines {
		dc.DrawString(line, x+pad, y+pad+fontPx+float64(i)*lineH)
	}
}

func (r *Renderer) assetImage(ref string) (image.Image, bool) {
	if r.assets == nil {
		return nil, false
	}
	return r.assets.Image(ref).Ready()
}

func cornerOrigin(corner Corner, w, h, cw, ch, margin float64) (float64, float64) {
	x := margin
	y := margin
	switch corner {
	case CornerTopRight:
		x = cw - margin - w
	case CornerBottomLeft:
		y = ch - margin - h
	case CornerBottomRight:
		x = cw - margin - w
		y = ch - margin - h
	}
	return x, y
}

// setFill applies a stored color combined with its independent opacity. The
// zero value means "no styling chosen" and fills fully opaque; an explicit
// opacity is honored, including full transparency, and clamped to [0, 1].
func setFill(dc *gg.Context, bg Background) {
	red, green, blue := parseHex(bg.Color)
	opacity := bg.Opacity
	switch {
	case bg == (Background{}):
		opacity = 1
	case opacity < 0:
		opacity = 0
	case opacity > 1:
		opacity = 1
	}
	dc.SetRGBA(red, green, blue, opacity)
}

func parseHex(value string) (float64, float64, float64) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(value) != 6 {
		return 0, 0, 0
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return float64(parsed>>16&0xff) / 255, float64(parsed>>8&0xff) / 255, float64(parsed&0xff) / 255
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func scaleOr1(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return scale
}
