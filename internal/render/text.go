package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FaceCache hands out font faces at pixel sizes, parsing the embedded Go
// Regular typeface once and caching faces per rounded size. Faces returned
// by the cache must not be used concurrently with each other's draw calls;
// the render loop is single-threaded so this holds by construction.
type FaceCache struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[int]font.Face
}

// NewFaceCache parses the embedded typeface. A parse failure is a fatal
// resource problem: text overlays cannot work without a face.
func NewFaceCache() (*FaceCache, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded typeface: %w", err)
	}
	return &FaceCache{font: parsed, faces: make(map[int]font.Face)}, nil
}

// Face returns a face for the given pixel size, minimum 6.
func (f *FaceCache) Face(px float64) font.Face {
	size := int(px + 0.5)
	if size < 6 {
		size = 6
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// NewFace only fails on invalid options; fall back to the smallest
		// cached face rather than crashing mid-tick.
		for _, cached := range f.faces {
			return cached
		}
		return nil
	}
	f.faces[size] = face
	return face
}
