package loom

import (
	"image/color"

	"github.com/visloom/loom/internal/cie"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// Lerp performs componentwise linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// LerpLab interpolates between two colors in CIE-Lab space and converts
// the result back to sRGB. Perceptual interpolation avoids the muddy
// intermediate hues that raw RGB interpolation produces; it is the
// interpolation used by Colormap lookups. Alpha interpolates linearly.
func (c RGBA) LerpLab(other RGBA, t float64) RGBA {
	l1, a1, b1 := cie.RGBToLab(c.R, c.G, c.B)
	l2, a2, b2 := cie.RGBToLab(other.R, other.G, other.B)
	l, a, b := cie.Lerp(l1, a1, b1, l2, a2, b2, t)
	r, g, bb := cie.LabToRGB(l, a, b)
	return RGBA{R: r, G: g, B: bb, A: c.A + (other.A-c.A)*t}
}

// PerceptualDistance returns the CIE94 distance between two colors,
// computed in Lab space. Alpha is ignored.
func (c RGBA) PerceptualDistance(other RGBA) float64 {
	l1, a1, b1 := cie.RGBToLab(c.R, c.G, c.B)
	l2, a2, b2 := cie.RGBToLab(other.R, other.G, other.B)
	return cie.Distance(l1, a1, b1, l2, a2, b2)
}

// Luminance returns the grayscale value of the color using the Rec. 709
// luma weights. Used for saturation adjustment in the compositor.
func (c RGBA) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Multiply returns the componentwise product of two colors.
func (c RGBA) Multiply(other RGBA) RGBA {
	return RGBA{
		R: c.R * other.R,
		G: c.G * other.G,
		B: c.B * other.B,
		A: c.A * other.A,
	}
}

// Scale multiplies the RGB components by s, leaving alpha unchanged.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Add sums the RGB and alpha components of two colors without clamping.
func (c RGBA) Add(other RGBA) RGBA {
	return RGBA{
		R: c.R + other.R,
		G: c.G + other.G,
		B: c.B + other.B,
		A: c.A + other.A,
	}
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA{0, 0, 0, 0}
)

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
