package loom

import "fmt"

// boundaryBlendWidth is the feather half-width between adjacent gradient
// segments in blend-coordinate space. A layer's weight ramps from 1 to 0
// across [boundary - feather, boundary + feather].
const boundaryBlendWidth = 0.01

// blendGroupSize is the number of layers one blend-map sample carries:
// one weight per RGBA channel, the hardware constraint of 4 channels per
// texture lookup.
const blendGroupSize = 4

// blendGroupHeight is the pixel height of one group's row band in the
// blend-map texture. Samples are taken at the band's vertical center.
const blendGroupHeight = 4

// BlendMap is the precomputed 2D weight texture for a VisAssetGradient.
// Layers are packed in groups of four: layer i lives in channel i%4 of
// the row band i/4. Sampling the band center at a blend coordinate
// yields up to four layer weights at once.
type BlendMap struct {
	layers int
	tex    *Pixmap
}

// NewBlendMap bakes the gradient's per-layer weights into a texture of
// the given width. Interior boundaries feather linearly over
// 2*boundaryBlendWidth so adjacent segment weights cross at 0.5 and sum
// to 1 through the transition; the outer edges at 0 and 1 do not feather.
func NewBlendMap(g *VisAssetGradient, width int) (*BlendMap, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(g.Assets) == 0 {
		return nil, fmt.Errorf("%w: blend map needs at least one asset", ErrMalformedGradient)
	}
	if width <= 0 {
		return nil, fmt.Errorf("blend map width %d must be positive", width)
	}

	layers := len(g.Assets)
	groups := (layers + blendGroupSize - 1) / blendGroupSize
	tex := NewPixmap(width, groups*blendGroupHeight)

	for x := 0; x < width; x++ {
		t := float64(x) / float64(width)
		for gr := 0; gr < groups; gr++ {
			var w [blendGroupSize]float64
			for c := 0; c < blendGroupSize; c++ {
				layer := gr*blendGroupSize + c
				if layer < layers {
					w[c] = layerWeight(g, layer, t)
				}
			}
			px := RGBA{R: w[0], G: w[1], B: w[2], A: w[3]}
			for y := 0; y < blendGroupHeight; y++ {
				tex.SetPixel(x, gr*blendGroupHeight+y, px)
			}
		}
	}

	return &BlendMap{layers: layers, tex: tex}, nil
}

// layerWeight is the analytic weight of one layer at blend coordinate t:
// 1 deep inside the layer's segment, a linear ramp through each interior
// boundary's feather, 0 outside.
func layerWeight(g *VisAssetGradient, layer int, t float64) float64 {
	lo, hi := g.segmentSpan(layer)

	up := 1.0
	if layer > 0 {
		up = clamp01((t - (lo - boundaryBlendWidth)) / (2 * boundaryBlendWidth))
	}
	down := 1.0
	if layer < len(g.Assets)-1 {
		down = clamp01(((hi + boundaryBlendWidth) - t) / (2 * boundaryBlendWidth))
	}
	if up < down {
		return up
	}
	return down
}

// Layers returns the number of layers the map covers.
func (m *BlendMap) Layers() int { return m.layers }

// Texture returns the baked weight texture, suitable for GPU upload.
func (m *BlendMap) Texture() *Pixmap { return m.tex }

// Weights samples the texture at the blend coordinate and aggregates the
// group channels into a flat per-layer weight slice. This is the same
// lookup the shader performs: one sample per group at the band's
// vertical center.
func (m *BlendMap) Weights(t float64) []float64 {
	weights := make([]float64, m.layers)
	groups := (m.layers + blendGroupSize - 1) / blendGroupSize
	for gr := 0; gr < groups; gr++ {
		bandCenter := (float64(gr*blendGroupHeight) + float64(blendGroupHeight)/2) / float64(m.tex.Height())
		px := m.tex.SampleUV(t, bandCenter)
		channels := [blendGroupSize]float64{px.R, px.G, px.B, px.A}
		for c := 0; c < blendGroupSize; c++ {
			layer := gr*blendGroupSize + c
			if layer < m.layers {
				weights[layer] = channels[c]
			}
		}
	}
	return weights
}
