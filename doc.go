// Package loom implements the colormap and transfer-function core of a
// scientific-visualization authoring system.
//
// # Overview
//
// loom models the visual descriptors that artists compose in a gradient
// editor — colormaps, opacity gradients, and discrete VisAsset gradients —
// and the algorithms that turn them into renderable data: Lab-space color
// interpolation, blend-map generation, and the seam-blended multi-texture
// compositor that the GPU shader mirrors.
//
// # Quick Start
//
//	import "github.com/visloom/loom"
//
//	cm := loom.NewColormap()
//	cm.AddControlPoint(0, loom.Black)
//	cm.AddControlPoint(1, loom.White)
//
//	// Perceptually interpolated lookup
//	c := cm.LookupColor(0.5)
//
//	// Render a GPU lookup strip
//	strip := cm.RasterStrip(1024)
//	_ = strip.SavePNG("colormap.png")
//
// # Architecture
//
// The library is organized into:
//   - Public API: Colormap, PrimitiveGradient, VisAssetGradient,
//     BlendMap, Compositor, RangeSet, Session
//   - Internal: cie (sRGB/Lab conversion, CIE94 distance)
//   - GPU surface: gpu/ (WGSL compositor shader, SPIR-V module creation)
//
// # Coordinate Conventions
//
// All descriptor positions, boundaries, and blend coordinates live in the
// normalized [0, 1] domain. Texture coordinates are tile-local UVs; layer
// textures stack vertically in an atlas, so a layer's atlas V coordinate
// is (layerIndex + localV) / layerCount.
//
// # Determinism
//
// Every operation is synchronous and pure apart from explicit mutation of
// the descriptor it is called on. The editor-preview path and the WGSL
// shader implement the same compositing math so both produce matching
// output for the same descriptors.
package loom
