// Package cie provides sRGB and CIE-Lab color space conversions and a
// perceptual distance metric for the colormap interpolation pipeline.
package cie

import "math"

// D65 reference white point in XYZ, Y normalized to 1.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

// labEpsilon is the CIE junction point (6/29)^3 between the cube-root
// and linear segments of the Lab transfer function.
const labEpsilon = 0.008856

// labKappa is the slope of the linear segment, 24389/27.
const labKappa = 903.2962962962963

// SRGBToLinear converts an sRGB component to linear light.
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4).
// Input and output are in range [0,1].
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear-light component to sRGB.
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055.
// Input and output are in range [0,1].
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// labF is the forward Lab transfer function applied to white-relative
// XYZ components.
func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

// labFInv inverts labF.
func labFInv(f float64) float64 {
	f3 := f * f * f
	if f3 > labEpsilon {
		return f3
	}
	return (116*f - 16) / labKappa
}

// RGBToLab converts sRGB components in [0,1] to CIE-Lab.
// L is in [0,100]; a and b are unbounded but typically within ±128.
func RGBToLab(r, g, b float64) (float64, float64, float64) {
	rl := SRGBToLinear(r)
	gl := SRGBToLinear(g)
	bl := SRGBToLinear(b)

	x := 0.4124564*rl + 0.3575761*gl + 0.1804375*bl
	y := 0.2126729*rl + 0.7151522*gl + 0.0721750*bl
	z := 0.0193339*rl + 0.1191920*gl + 0.9503041*bl

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

// LabToRGB converts CIE-Lab to sRGB components clamped to [0,1].
// Out-of-gamut Lab values clamp at the gamut boundary rather than
// producing components outside [0,1] or NaN.
func LabToRGB(l, a, b float64) (float64, float64, float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	x := labFInv(fx) * whiteX
	y := labFInv(fy) * whiteY
	z := labFInv(fz) * whiteZ

	rl := 3.2404542*x - 1.5371385*y - 0.4985314*z
	gl := -0.9692660*x + 1.8760108*y + 0.0415560*z
	bl := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return clamp01(LinearToSRGB(rl)), clamp01(LinearToSRGB(gl)), clamp01(LinearToSRGB(bl))
}

// Distance returns the CIE94 perceptual distance between two Lab colors.
// Chroma and hue differences are down-weighted by sc = 1+0.045*c1 and
// sh = 1+0.015*c1. The hue term is computed as a residual and floored at
// zero before the square root, so coincident grays (c1 == c2 == 0) are
// handled without a division guard.
func Distance(l1, a1, b1, l2, a2, b2 float64) float64 {
	dl := l1 - l2
	c1 := math.Sqrt(a1*a1 + b1*b1)
	c2 := math.Sqrt(a2*a2 + b2*b2)
	dc := c1 - c2
	da := a1 - a2
	db := b1 - b2
	dh2 := math.Max(0, da*da+db*db-dc*dc)

	sc := 1 + 0.045*c1
	sh := 1 + 0.015*c1

	return math.Sqrt(math.Max(0, dl*dl+(dc/sc)*(dc/sc)+dh2/(sh*sh)))
}

// Lerp interpolates each Lab component independently.
// alpha = 0 returns the first color, alpha = 1 the second.
func Lerp(l1, a1, b1, l2, a2, b2, alpha float64) (float64, float64, float64) {
	return l1 + (l2-l1)*alpha, a1 + (a2-a1)*alpha, b1 + (b2-b1)*alpha
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
