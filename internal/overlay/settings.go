package overlay

import (
	"fmt"
	"strings"
	"time"

	"switchyard/internal/render"
)

// Corner is a screen-corner placement for an overlay element.
type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"
)

// ParseCorner converts user input into a Corner.
func ParseCorner(value string) (Corner, error) {
	switch Corner(strings.ToLower(strings.TrimSpace(value))) {
	case CornerTopLeft:
		return CornerTopLeft, nil
	case CornerTopRight:
		return CornerTopRight, nil
	case CornerBottomLeft:
		return CornerBottomLeft, nil
	case CornerBottomRight:
		return CornerBottomRight, nil
	default:
		return "", fmt.Errorf("unknown placement %q", value)
	}
}

// Background pairs a stored color with an independent opacity so changing
// one never requires re-specifying the other.
type Background struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Logo is a branding image pinned to a corner.
type Logo struct {
	Show      bool    `json:"show"`
	Asset     string  `json:"asset"`
	Placement Corner  `json:"placement"`
	Scale     float64 `json:"scale"`
}

// Banner is a single-line message box.
type Banner struct {
	Show       bool       `json:"show"`
	Text       string     `json:"text"`
	Placement  Corner     `json:"placement"`
	Background Background `json:"background"`
	Scale      float64    `json:"scale"`
}

// LowerThird is the two-line name/title card anchored bottom-left.
type LowerThird struct {
	Show       bool       `json:"show"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle"`
	Background Background `json:"background"`
	Scale      float64    `json:"scale"`
}

// Freestyle is arbitrary multi-line text pinned to a corner.
type Freestyle struct {
	Show       bool       `json:"show"`
	Text       string     `json:"text"`
	Placement  Corner     `json:"placement"`
	Background Background `json:"background"`
	Scale      float64    `json:"scale"`
}

// Ticker is the scrolling text strip along the bottom edge.
type Ticker struct {
	Show       bool       `json:"show"`
	Text       string     `json:"text"`
	Background Background `json:"background"`
	Scale      float64    `json:"scale"`
}

// Countdown draws a centered timer card. Target is persisted; Remaining is
// derived from it each tick by the session, so the renderer itself holds no
// time state.
type Countdown struct {
	Show   bool      `json:"show"`
	Title  string    `json:"title"`
	Target time.Time `json:"target"`

	Remaining time.Duration `json:"-"`
}

// BulletList is one named list; items are newline-separated and blank lines
// are dropped at render time.
type BulletList struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items string `json:"items"`
}

// BulletLists is the collection plus the id of the list currently on screen.
type BulletLists struct {
	Show       bool         `json:"show"`
	ActiveID   string       `json:"active_id"`
	Lists      []BulletList `json:"lists"`
	Placement  Corner       `json:"placement"`
	Background Background   `json:"background"`
	Scale      float64      `json:"scale"`
}

// FullscreenMode selects the single active full-screen overlay variant. The
// enum makes the "at most one variant active" invariant structural instead
// of relying on editors keeping independent flags consistent.
type FullscreenMode string

const (
	FullscreenNone       FullscreenMode = "none"
	FullscreenImage      FullscreenMode = "image"
	FullscreenVideo      FullscreenMode = "video"
	FullscreenProcedural FullscreenMode = "procedural"
)

// ProceduralStyle ids understood by the renderer.
const (
	StyleBrackets = "brackets"
	StyleWave     = "wave"
	StyleVignette = "vignette"
)

// Fullscreen configures the full-canvas overlay layer.
type Fullscreen struct {
	Mode  FullscreenMode `json:"mode"`
	Asset string         `json:"asset"`
	Style string         `json:"style"`
}

// Settings is the per-tick immutable snapshot of every overlay sub-config.
// The editor mutates a copy through the settings store; the render loop only
// ever reads a value it snapshotted at tick start.
type Settings struct {
	Logo       Logo           `json:"logo"`
	Banner     Banner         `json:"banner"`
	LowerThird LowerThird     `json:"lower_third"`
	Ticker     Ticker         `json:"ticker"`
	Countdown  Countdown      `json:"countdown"`
	Text       Freestyle      `json:"text"`
	Bullets    BulletLists    `json:"bullets"`
	Fullscreen Fullscreen     `json:"fullscreen"`
	Filters    render.Filters `json:"filters"`
}

// DefaultSettings returns a snapshot with everything hidden and sane
// styling defaults.
func DefaultSettings() Settings {
	bg := Background{Color: "#101014", Opacity: 0.65}
	return Settings{
		Logo:       Logo{Placement: CornerTopRight, Scale: 1},
		Banner:     Banner{Placement: CornerBottomRight, Background: bg, Scale: 1},
		LowerThird: LowerThird{Background: Background{Color: "#18447a", Opacity: 0.85}, Scale: 1},
		Ticker:     Ticker{Background: Background{Color: "#000000", Opacity: 0.75}, Scale: 1},
		Text:       Freestyle{Placement: CornerTopLeft, Background: bg, Scale: 1},
		Bullets:    BulletLists{Placement: CornerTopLeft, Background: bg, Scale: 1},
		Fullscreen: Fullscreen{Mode: FullscreenNone, Style: StyleBrackets},
		Filters:    render.NeutralFilters(),
	}
}

// ActiveList returns the bullet list selected by ActiveID.
func (b BulletLists) ActiveList() (BulletList, bool) {
	for _, list := range b.Lists {
		if list.ID == b.ActiveID {
			return list, true
		}
	}
	return BulletList{}, false
}

// SplitItems returns the non-blank lines of a list body.
func SplitItems(items string) []string {
	raw := strings.Split(items, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
