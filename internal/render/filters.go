package render

// Filters is the global color adjustment applied while drawing source video.
// The neutral value for each channel is 1; the zero value is treated as
// neutral so an unset config never darkens the frame.
type Filters struct {
	Brightness float64 `json:"brightness" toml:"brightness"`
	Contrast   float64 `json:"contrast" toml:"contrast"`
	Saturation float64 `json:"saturation" toml:"saturation"`
	Grayscale  bool    `json:"grayscale" toml:"grayscale"`
}

// NeutralFilters returns the identity adjustment.
func NeutralFilters() Filters {
	return Filters{Brightness: 1, Contrast: 1, Saturation: 1}
}

func (f Filters) normalized() Filters {
	if f.Brightness == 0 {
		f.Brightness = 1
	}
	if f.Contrast == 0 {
		f.Contrast = 1
	}
	if f.Saturation == 0 {
		f.Saturation = 1
	}
	return f
}

// IsNeutral reports whether applying f would be a no-op.
func (f Filters) IsNeutral() bool {
	f = f.normalized()
	return f.Brightness == 1 && f.Contrast == 1 && f.Saturation == 1 && !f.Grayscale
}

// Apply runs the adjustment over every canvas pixel in place. The compositor
// calls this after drawing source video and before drawing overlays, so
// overlays never inherit color filters.
func (c *Canvas) Apply(f Filters) {
	f = f.normalized()
	if f.IsNeutral() {
		return
	}
	pix := c.RGBA.Pix
	for i := 0; i < len(pix); i += 4 {
		r := float64(pix[i])
		g := float64(pix[i+1])
		b := float64(pix[i+2])

		r *= f.Brightness
		g *= f.Brightness
		b *= f.Brightness

		r = (r-128)*f.Contrast + 128
		g = (g-128)*f.Contrast + 128
		b = (b-128)*f.Contrast + 128

		// Rec. 601 luma.
		gray := 0.299*r + 0.587*g + 0.114*b
		if f.Grayscale {
			r, g, b = gray, gray, gray
		} else if f.Saturation != 1 {
			r = gray + (r-gray)*f.Saturation
			g = gray + (g-gray)*f.Saturation
			b = gray + (b-gray)*f.Saturation
		}

		pix[i] = clampByte(r)
		pix[i+1] = clampByte(g)
		pix[i+2] = clampByte(b)
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
