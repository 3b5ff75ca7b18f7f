package layout

import (
	"fmt"
	"image"
	"strings"

	"switchyard/internal/source"
)

// Mode names a geometric arrangement strategy for one or two staged sources.
type Mode string

const (
	ModeSolo          Mode = "solo"
	ModePIP           Mode = "pip"
	ModeSideBySide    Mode = "side-by-side"
	ModeHeroBelow     Mode = "hero-below"
	ModeSplitVertical Mode = "split-vertical"
	ModeCinematic     Mode = "cinematic"
	ModeSidebar       Mode = "sidebar"
)

// Modes lists every layout mode in presentation order.
func Modes() []Mode {
	return []Mode{ModeSolo, ModePIP, ModeSideBySide, ModeHeroBelow, ModeSplitVertical, ModeCinematic, ModeSidebar}
}

// Parse converts user input into a Mode.
func Parse(value string) (Mode, error) {
	candidate := Mode(strings.ToLower(strings.TrimSpace(value)))
	for _, mode := range Modes() {
		if candidate == mode {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown layout mode %q", value)
}

// Fit selects the placement semantics for a rectangle.
type Fit int

const (
	// FitCover crops the source to fill the rectangle completely.
	FitCover Fit = iota
	// FitContain letterboxes the source so nothing is cropped.
	FitContain
)

// Subject describes one drawable source entering the layout pass.
type Subject struct {
	ID   string
	Type source.Type
}

// Placement is one computed slot: where a subject lands on the canvas and how
// it is fitted. CircleRadius > 0 means the slot is clipped to a circle
// centered on the rectangle.
type Placement struct {
	Index        int
	Rect         image.Rectangle
	Fit          Fit
	CircleRadius int
	// NameTag is a label bar attached below the slot when the layout leaves
	// room for one; zero when absent.
	NameTag image.Rectangle
}

// marginFraction is the canvas-relative spacing unit: 1.5% of the width.
const marginFraction = 0.015

// Margin returns the pixel margin for a canvas width.
func Margin(cw int) int {
	return int(float64(cw) * marginFraction)
}

// Arrange maps drawable subjects and a layout mode to placements within a
// cw×ch canvas. It is a pure function: no state, no side effects. Requesting
// a two-source mode with fewer than two subjects degrades to solo framing,
// and screen-type subjects are always fitted contain so shared content stays
// readable.
func Arrange(mode Mode, subjects []Subject, cw, ch int) []Placement {
	if len(subjects) == 0 || cw <= 0 || ch <= 0 {
		return nil
	}
	if len(subjects) < 2 || mode == ModeSolo {
		return solo(subjects, cw, ch)
	}

	var placements []Placement
	switch mode {
	case ModeSideBySide:
		placements = sideBySide(cw, ch)
	case ModeSplitVertical:
		placements = splitVertical(cw, ch)
	case ModePIP:
		placements = pictureInPicture(cw, ch)
	case ModeHeroBelow:
		placements = heroBelow(cw, ch)
	case ModeCinematic:
		placements = cinematic(cw, ch)
	case ModeSidebar:
		placements = sidebar(subjects, cw, ch)
	default:
		return solo(subjects, cw, ch)
	}

	for i := range placements {
		placements[i].Fit = effectiveFit(placements[i].Fit, subjects[placements[i].Index].Type)
		placements[i].Rect = placements[i].Rect.Intersect(image.Rect(0, 0, cw, ch))
	}
	return placements
}

// effectiveFit enforces the screen-content rule: screen shares are never
// cropped, whatever the mode asked for.
func effectiveFit(requested Fit, typ source.Type) Fit {
	if typ == source.TypeScreen {
		return FitContain
	}
	return requested
}

func solo(subjects []Subject, cw, ch int) []Placement {
	return []Placement{{
		Index: 0,
		Rect:  image.Rect(0, 0, cw, ch),
		Fit:   FitContain,
	}}
}

func sideBySide(cw, ch int) []Placement {
	half := cw / 2
	return []Placement{
		{Index: 0, Rect: image.Rect(0, 0, half, ch), Fit: FitContain},
		{Index: 1, Rect: image.Rect(half, 0, cw, ch), Fit: FitContain},
	}
}

func splitVertical(cw, ch int) []Placement {
	half := ch / 2
	return []Placement{
		{Index: 0, Rect: image.Rect(0, 0, cw, half), Fit: FitContain},
		{Index: 1, Rect: image.Rect(0, half, cw, ch), Fit: FitContain},
	}
}

func pictureInPicture(cw, ch int) []Placement {
	margin := Margin(cw)
	insetW := cw / 4
	insetH := insetW * 9 / 16
	x1 := cw - margin - insetW
	y1 := ch - margin - insetH
	return []Placement{
		{Index: 0, Rect: image.Rect(0, 0, cw, ch), Fit: FitCover},
		{Index: 1, Rect: image.Rect(x1, y1, x1+insetW, y1+insetH), Fit: FitCover},
	}
}

func heroBelow(cw, ch int) []Placement {
	heroH := ch * 8 / 10
	remaining := ch - heroH
	belowW := remaining * 16 / 9
	if belowW > cw {
		belowW = cw
	}
	x := (cw - belowW) / 2
	return []Placement{
		{Index: 0, Rect: image.Rect(0, 0, cw, heroH), Fit: FitCover},
		{Index: 1, Rect: image.Rect(x, heroH, x+belowW, ch), Fit: FitCover},
	}
}

func cinematic(cw, ch int) []Placement {
	margin := Margin(cw)
	radius := cw / 10
	x1 := cw - margin - 2*radius
	y1 := ch - margin - 2*radius
	return []Placement{
		{Index: 0, Rect: image.Rect(0, 0, cw, ch), Fit: FitCover},
		{
			Index:        1,
			Rect:         image.Rect(x1, y1, x1+2*radius, y1+2*radius),
			Fit:          FitCover,
			CircleRadius: radius,
		},
	}
}

// sidebar reserves the left quarter for a camera bubble and gives the rest to
// screen content. Roles follow source types; when types do not disambiguate,
// the second subject takes the wide slot.
func sidebar(subjects []Subject, cw, ch int) []Placement {
	screenIdx, cameraIdx := 1, 0
	if subjects[0].Type == source.TypeScreen && subjects[1].Type != source.TypeScreen {
		screenIdx, cameraIdx = 0, 1
	}

	margin := Margin(cw)
	column := cw / 4

	camW := column - 2*margin
	camH := camW * 9 / 16
	camera := Placement{
		Index: cameraIdx,
		Rect:  image.Rect(margin, margin, margin+camW, margin+camH),
		Fit:   FitCover,
	}

	// Name-tag bar below the bubble when the column has room for it.
	tagH := ch / 20
	if margin+camH+tagH <= ch {
		camera.NameTag = image.Rect(margin, margin+camH, margin+camW, margin+camH+tagH)
	}

	screen := Placement{
		Index: screenIdx,
		Rect:  image.Rect(column, 0, cw, ch),
		Fit:   FitContain,
	}
	return []Placement{screen, camera}
}
