package loom

import (
	"fmt"
	"math"
)

// RenderMode selects how the composited texture color combines with the
// colormap-sampled base color.
type RenderMode int

const (
	// RenderModeOpaque replaces the colormap color with the texture
	// color outright.
	RenderModeOpaque RenderMode = iota
	// RenderModeTextured multiplies the texture color over the colormap
	// color.
	RenderModeTextured
)

// DefaultSeamBlendWidth is the margin, as a fraction of tile size,
// within which tile-edge samples blend toward the opposite edge.
const DefaultSeamBlendWidth = 0.1

// Compositor resolves a stack of up to MaxGradientAssets texture layers
// plus a blend map into a single per-sample color. The editor preview
// runs this CPU implementation; the WGSL shader in shader.go implements
// the same math per fragment.
type Compositor struct {
	layers   []*Pixmap
	blend    *BlendMap
	colormap *Colormap

	blendWidth float64
	saturation float64
	intensity  float64
	mode       RenderMode
}

// CompositorOption configures a Compositor during creation.
type CompositorOption func(*Compositor)

// WithColormap sets the base colormap sampled at the blend coordinate.
func WithColormap(cm *Colormap) CompositorOption {
	return func(c *Compositor) { c.colormap = cm }
}

// WithSeamBlendWidth overrides the tile-edge blend margin.
func WithSeamBlendWidth(w float64) CompositorOption {
	return func(c *Compositor) { c.blendWidth = clamp01(w) }
}

// WithSaturation sets the texture saturation factor: 0 is grayscale,
// 1 leaves colors unchanged.
func WithSaturation(s float64) CompositorOption {
	return func(c *Compositor) { c.saturation = s }
}

// WithIntensity sets the texture intensity factor: 0 washes the texture
// out to white, 1 leaves it unchanged.
func WithIntensity(i float64) CompositorOption {
	return func(c *Compositor) { c.intensity = i }
}

// WithRenderMode selects how texture and colormap colors combine.
func WithRenderMode(m RenderMode) CompositorOption {
	return func(c *Compositor) { c.mode = m }
}

// NewCompositor creates a compositor over the given texture layers and
// their blend map. The layer count must match the blend map and stay
// within the shader's stacking limit. A nil blend map is allowed only
// with zero layers (flat colormap rendering).
func NewCompositor(layers []*Pixmap, blend *BlendMap, opts ...CompositorOption) (*Compositor, error) {
	if len(layers) > MaxGradientAssets {
		return nil, fmt.Errorf("compositor: %d layers exceed the %d-texture limit", len(layers), MaxGradientAssets)
	}
	if len(layers) > 0 {
		if blend == nil {
			return nil, fmt.Errorf("compositor: %d layers but no blend map", len(layers))
		}
		if blend.Layers() != len(layers) {
			return nil, fmt.Errorf("compositor: %d layers but blend map covers %d", len(layers), blend.Layers())
		}
	}

	c := &Compositor{
		layers:     layers,
		blend:      blend,
		blendWidth: DefaultSeamBlendWidth,
		saturation: 1,
		intensity:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// LayerCount returns the number of stacked texture layers.
func (c *Compositor) LayerCount() int { return len(c.layers) }

// AtlasV maps a layer index and tile-local V coordinate to the stacked
// atlas texture's V coordinate: (layer + localV) / layerCount.
func (c *Compositor) AtlasV(layer int, localV float64) float64 {
	if len(c.layers) == 0 {
		return localV
	}
	return (float64(layer) + clamp01(localV)) / float64(len(c.layers))
}

// SampleAtlas resolves an atlas coordinate back to a layer and samples
// it with seam blending, honoring the vertical-stacking contract.
func (c *Compositor) SampleAtlas(u, atlasV float64) RGBA {
	if len(c.layers) == 0 {
		return Transparent
	}
	scaled := clamp01(atlasV) * float64(len(c.layers))
	layer := int(scaled)
	if layer >= len(c.layers) {
		layer = len(c.layers) - 1
	}
	return c.seamSample(c.layers[layer], u, scaled-float64(layer))
}

// Sample computes the final color for one fragment. blendCoord is the
// normalized gradient variable value selecting layer weights and the
// colormap color; (u, v) is the tile-local texture coordinate.
//
// With zero layers, texture compositing is skipped entirely and the
// colormap color is returned. Weights from overlapping groups are summed
// without renormalization, so stacks whose weights exceed 1 over-brighten;
// this mirrors the shader.
func (c *Compositor) Sample(blendCoord, u, v float64) RGBA {
	base := White
	if c.colormap != nil {
		base = c.colormap.LookupColor(blendCoord)
	}
	if len(c.layers) == 0 {
		return base
	}

	weights := c.blend.Weights(blendCoord)
	tex := Transparent
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		col := c.seamSample(c.layers[i], u, v)
		tex = tex.Add(RGBA{R: col.R * w, G: col.G * w, B: col.B * w, A: col.A * w})
	}

	gray := tex.Luminance()
	tex = RGBA{R: gray, G: gray, B: gray, A: tex.A}.Lerp(tex, c.saturation)
	tex = RGBA{R: 1, G: 1, B: 1, A: tex.A}.Lerp(tex, c.intensity)

	if c.mode == RenderModeTextured {
		return tex.Multiply(base)
	}
	return tex
}

// seamSample samples a layer texture at a tile-local UV, hiding tile
// seams. Within the blend margin of an edge the sample blends toward the
// mirrored opposite-edge sample with a linear weight that reaches 1/2 at
// the edge, so both tiles meeting at a seam agree. Within the margin of
// two edges at once the horizontal and vertical side blends combine by
// their diagonal distance, and a radial falloff hands over to the shared
// corner sample; all four tiles meeting at a corner converge on the same
// four-texel average.
func (c *Compositor) seamSample(p *Pixmap, u, v float64) RGBA {
	u -= math.Floor(u)
	v -= math.Floor(v)

	s := p.SampleUV(u, v)
	tu := edgeProximity(u, c.blendWidth)
	tv := edgeProximity(v, c.blendWidth)

	switch {
	case tu == 0 && tv == 0:
		return s
	case tv == 0:
		return s.Lerp(p.SampleUV(1-u, v), 0.5*tu)
	case tu == 0:
		return s.Lerp(p.SampleUV(u, 1-v), 0.5*tv)
	}

	h := p.SampleUV(1-u, v)
	vert := p.SampleUV(u, 1-v)
	diag := p.SampleUV(1-u, 1-v)

	hBlend := s.Lerp(h, 0.5*tu)
	vBlend := s.Lerp(vert, 0.5*tv)
	side := hBlend.Lerp(vBlend, tv/(tu+tv))

	corner := s.Lerp(h, 0.5*tu).Lerp(vert.Lerp(diag, 0.5*tu), 0.5*tv)
	return side.Lerp(corner, tu*tv)
}

// edgeProximity returns how deep a coordinate sits inside an edge
// margin: 0 outside the margin, rising linearly to 1 at the edge itself.
func edgeProximity(x, m float64) float64 {
	if m <= 0 {
		return 0
	}
	switch {
	case x < m:
		return (m - x) / m
	case x > 1-m:
		return (x - (1 - m)) / m
	}
	return 0
}
