package loom

import (
	"fmt"
	"sort"
)

// ColorPoint is a single control point of a Colormap: a color anchored
// at a position in the [0, 1] domain.
type ColorPoint struct {
	Position float64 // Position in the colormap, 0.0 to 1.0
	Color    RGBA    // Color at this position
}

// Colormap is an ordered sequence of control points, interpolated in
// CIE-Lab space between neighbors. The sequence is kept sorted by
// position ascending at all times; points with equal positions keep
// their insertion order (stable sort), so lookups between duplicates are
// deterministic.
type Colormap struct {
	// Name identifies the colormap in serialized form.
	Name string

	points []ColorPoint
}

// NewColormap creates an empty colormap.
func NewColormap() *Colormap {
	return &Colormap{}
}

// Len returns the number of control points.
func (cm *Colormap) Len() int {
	return len(cm.points)
}

// Points returns a copy of the control points in position order.
func (cm *Colormap) Points() []ColorPoint {
	out := make([]ColorPoint, len(cm.points))
	copy(out, cm.points)
	return out
}

// AddControlPoint inserts a control point and re-sorts the sequence.
// Duplicate positions are legal; insertion order among equals is kept.
func (cm *Colormap) AddControlPoint(position float64, color RGBA) {
	cm.points = append(cm.points, ColorPoint{Position: position, Color: color})
	cm.sortPoints()
}

// EditControlPoint replaces the point at index i and re-sorts.
func (cm *Colormap) EditControlPoint(i int, position float64, color RGBA) error {
	if i < 0 || i >= len(cm.points) {
		return fmt.Errorf("edit control point: index %d out of range [0,%d)", i, len(cm.points))
	}
	cm.points[i] = ColorPoint{Position: position, Color: color}
	cm.sortPoints()
	return nil
}

// RemoveControlPoint deletes the point at index i.
func (cm *Colormap) RemoveControlPoint(i int) error {
	if i < 0 || i >= len(cm.points) {
		return fmt.Errorf("remove control point: index %d out of range [0,%d)", i, len(cm.points))
	}
	cm.points = append(cm.points[:i], cm.points[i+1:]...)
	return nil
}

// Flip mirrors the colormap: each point's position becomes 1 - position.
// The re-sort reverses iteration order since positions invert.
func (cm *Colormap) Flip() {
	for i := range cm.points {
		cm.points[i].Position = 1 - cm.points[i].Position
	}
	cm.sortPoints()
}

// LookupColor returns the color at a position in [0, 1].
//
// With no control points the result is white. With one, that point's
// color is returned regardless of position. Otherwise positions at or
// beyond the extremes clamp to the nearest endpoint's color, and
// positions strictly between two points interpolate in Lab space by
// alpha = (position - v1) / (v2 - v1).
func (cm *Colormap) LookupColor(position float64) RGBA {
	if len(cm.points) == 0 {
		return White
	}
	if len(cm.points) == 1 {
		return cm.points[0].Color
	}

	if position <= cm.points[0].Position {
		return cm.points[0].Color
	}
	last := len(cm.points) - 1
	if position >= cm.points[last].Position {
		return cm.points[last].Color
	}

	// First point whose position is >= the query.
	idx := sort.Search(len(cm.points), func(i int) bool {
		return cm.points[i].Position >= position
	})

	p1 := cm.points[idx-1]
	p2 := cm.points[idx]
	if p2.Position == p1.Position {
		return p1.Color
	}

	alpha := (position - p1.Position) / (p2.Position - p1.Position)
	return p1.Color.LerpLab(p2.Color, alpha)
}

// RasterStrip renders the colormap into a 1-pixel-tall strip, sampling
// LookupColor at x/width for each column. The strip doubles as the GPU
// lookup texture and as thumbnail source material.
func (cm *Colormap) RasterStrip(width int) *Pixmap {
	strip := NewPixmap(width, 1)
	for x := 0; x < width; x++ {
		strip.SetPixel(x, 0, cm.LookupColor(float64(x)/float64(width)))
	}
	return strip
}

// sortPoints re-sorts by position ascending. The sort is stable so that
// points sharing a position stay in insertion order.
func (cm *Colormap) sortPoints() {
	sort.SliceStable(cm.points, func(i, j int) bool {
		return cm.points[i].Position < cm.points[j].Position
	})
}
