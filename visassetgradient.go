package loom

import (
	"encoding/json"
	"fmt"
)

// MaxGradientAssets caps the number of assets one gradient can hold,
// matching the shader's texture-stacking limit.
const MaxGradientAssets = 16

// MinSegmentWidth is the smallest span a gradient segment may occupy,
// twice the blend map's boundary feather so no segment can blend away
// entirely.
const MinSegmentWidth = 2 * boundaryBlendWidth

// GradientType is the asset category a VisAssetGradient composes.
type GradientType int

const (
	// TypeUnset marks an empty gradient that has not adopted a type yet.
	TypeUnset GradientType = iota
	// TypeGlyph composes glyph assets.
	TypeGlyph
	// TypeLine composes line-texture assets.
	TypeLine
	// TypeTexture composes surface-texture assets.
	TypeTexture
)

var gradientTypeNames = map[GradientType]string{
	TypeUnset:   "",
	TypeGlyph:   "glyph",
	TypeLine:    "line",
	TypeTexture: "texture",
}

// String returns the serialized name of the type.
func (t GradientType) String() string { return gradientTypeNames[t] }

// ParseGradientType converts a serialized type name back to its enum.
func ParseGradientType(s string) (GradientType, error) {
	for t, name := range gradientTypeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeUnset, fmt.Errorf("unknown gradient type %q", s)
}

// VisAsset references a discrete artist-authored artifact by UUID,
// tagged with the category it belongs to.
type VisAsset struct {
	UUID string
	Type GradientType
}

// Side selects which side of an adjacent stop a new stop lands on.
type Side int

const (
	// Before inserts to the left of the adjacent stop.
	Before Side = iota
	// After inserts to the right of the adjacent stop.
	After
)

// VisAssetGradient composes up to MaxGradientAssets discrete assets
// across the [0, 1] domain. Points holds the boundary positions between
// consecutive assets, so len(Points) == len(Assets) - 1 always, with
// boundaries strictly ascending.
type VisAssetGradient struct {
	UUID   string
	Type   GradientType
	Points []float64
	Assets []string
}

// NewVisAssetGradient creates an empty gradient with the given UUID.
// The gradient adopts a type from the first asset dropped into it.
func NewVisAssetGradient(uuid string) *VisAssetGradient {
	return &VisAssetGradient{UUID: uuid}
}

// Validate checks the structural invariants: boundary count is one less
// than asset count (zero for an empty gradient), boundaries strictly
// ascending within (0, 1), and asset count within capacity.
func (g *VisAssetGradient) Validate() error {
	if len(g.Assets) == 0 {
		if len(g.Points) != 0 {
			return fmt.Errorf("%w: %d boundaries with no assets", ErrMalformedGradient, len(g.Points))
		}
		return nil
	}
	if len(g.Points) != len(g.Assets)-1 {
		return fmt.Errorf("%w: %d assets need %d boundaries, have %d",
			ErrMalformedGradient, len(g.Assets), len(g.Assets)-1, len(g.Points))
	}
	if len(g.Assets) > MaxGradientAssets {
		return fmt.Errorf("%w: %d assets exceed capacity %d", ErrMalformedGradient, len(g.Assets), MaxGradientAssets)
	}
	prev := 0.0
	for i, p := range g.Points {
		if p <= prev || p >= 1 {
			return fmt.Errorf("%w: boundary %d at %v out of order", ErrMalformedGradient, i, p)
		}
		prev = p
	}
	return nil
}

// segmentSpan returns the [lo, hi) span the asset at index i occupies.
func (g *VisAssetGradient) segmentSpan(i int) (float64, float64) {
	lo, hi := 0.0, 1.0
	if i > 0 {
		lo = g.Points[i-1]
	}
	if i < len(g.Points) {
		hi = g.Points[i]
	}
	return lo, hi
}

func (g *VisAssetGradient) indexOf(assetID string) int {
	for i, id := range g.Assets {
		if id == assetID {
			return i
		}
	}
	return -1
}

// InsertStop adds an asset next to an existing one. The new boundary is
// the midpoint of the adjacent stop's segment, so the new asset takes
// half of it. Inserting into a full gradient fails with ErrGradientFull,
// and splitting a segment narrower than 2*MinSegmentWidth fails with
// ErrSegmentTooNarrow; either way the gradient is left untouched.
//
// A type-mismatched asset is silently ignored: the drag-and-drop editor
// treats it as a no-op rather than an error. An empty gradient adopts
// the type of its first asset.
func (g *VisAssetGradient) InsertStop(asset VisAsset, adjacentID string, side Side) error {
	if len(g.Assets) == 0 {
		g.Type = asset.Type
		g.Assets = []string{asset.UUID}
		return nil
	}
	if asset.Type != g.Type {
		Logger().Warn("ignoring type-mismatched asset",
			"gradient", g.UUID, "asset", asset.UUID,
			"gradientType", g.Type.String(), "assetType", asset.Type.String())
		return nil
	}
	if len(g.Assets) >= MaxGradientAssets {
		return ErrGradientFull
	}

	j := g.indexOf(adjacentID)
	if j < 0 {
		return fmt.Errorf("insert stop: %w: %s", ErrAssetNotFound, adjacentID)
	}

	lo, hi := g.segmentSpan(j)
	if hi-lo < 2*MinSegmentWidth {
		return fmt.Errorf("insert stop: %w: segment %d spans %v", ErrSegmentTooNarrow, j, hi-lo)
	}
	boundary := (lo + hi) / 2

	// The boundary between the two halves of segment j sits at index j
	// regardless of side; only the asset insert position differs.
	g.Points = append(g.Points, 0)
	copy(g.Points[j+1:], g.Points[j:])
	g.Points[j] = boundary

	at := j
	if side == After {
		at = j + 1
	}
	g.Assets = append(g.Assets, "")
	copy(g.Assets[at+1:], g.Assets[at:])
	g.Assets[at] = asset.UUID
	return nil
}

// RemoveStop deletes an asset, merging its span into a neighbor: the
// boundary to its left is dropped if one exists, else the one to its
// right, else the gradient is simply emptied.
func (g *VisAssetGradient) RemoveStop(assetID string) error {
	j := g.indexOf(assetID)
	if j < 0 {
		return fmt.Errorf("remove stop: %w: %s", ErrAssetNotFound, assetID)
	}

	g.Assets = append(g.Assets[:j], g.Assets[j+1:]...)
	switch {
	case j > 0:
		g.Points = append(g.Points[:j-1], g.Points[j:]...)
	case len(g.Points) > 0:
		g.Points = g.Points[1:]
	}
	if len(g.Assets) == 0 {
		g.Points = nil
	}
	return nil
}

// ReplaceStop swaps an asset in place. The replacement must match the
// gradient's type; a mismatch fails with ErrTypeMismatch and mutates
// nothing.
func (g *VisAssetGradient) ReplaceStop(oldID string, replacement VisAsset) error {
	j := g.indexOf(oldID)
	if j < 0 {
		return fmt.Errorf("replace stop: %w: %s", ErrAssetNotFound, oldID)
	}
	if replacement.Type != g.Type {
		return fmt.Errorf("replace stop: %w: gradient %s, asset %s",
			ErrTypeMismatch, g.Type.String(), replacement.Type.String())
	}
	g.Assets[j] = replacement.UUID
	return nil
}

// ResizeBoundary moves boundary i to the given position, clamped so
// both adjoining segments keep at least MinSegmentWidth. When the
// neighbors already sit closer than 2*MinSegmentWidth no legal position
// exists and the boundary stays put.
func (g *VisAssetGradient) ResizeBoundary(i int, position float64) error {
	if i < 0 || i >= len(g.Points) {
		return fmt.Errorf("resize boundary: index %d out of range [0,%d)", i, len(g.Points))
	}
	lo, hi := 0.0, 1.0
	if i > 0 {
		lo = g.Points[i-1]
	}
	if i+1 < len(g.Points) {
		hi = g.Points[i+1]
	}
	lo += MinSegmentWidth
	hi -= MinSegmentWidth
	if lo > hi {
		return nil
	}
	if position < lo {
		position = lo
	}
	if position > hi {
		position = hi
	}
	g.Points[i] = position
	return nil
}

// SegmentIndex returns the index of the asset whose segment contains the
// blend coordinate t. Boundaries belong to the segment on their right.
func (g *VisAssetGradient) SegmentIndex(t float64) int {
	if len(g.Assets) == 0 {
		return -1
	}
	for i, p := range g.Points {
		if t < p {
			return i
		}
	}
	return len(g.Assets) - 1
}

// visAssetGradientJSON is the persisted descriptor shape.
type visAssetGradientJSON struct {
	UUID          string    `json:"uuid"`
	GradientType  string    `json:"gradientType"`
	GradientScale string    `json:"gradientScale"`
	Points        []float64 `json:"points"`
	VisAssets     []string  `json:"visAssets"`
}

// MarshalJSON serializes the gradient in the persisted-state shape.
// GradientScale is always "discrete" for asset gradients.
func (g *VisAssetGradient) MarshalJSON() ([]byte, error) {
	points := g.Points
	if points == nil {
		points = []float64{}
	}
	assets := g.Assets
	if assets == nil {
		assets = []string{}
	}
	return json.Marshal(visAssetGradientJSON{
		UUID:          g.UUID,
		GradientType:  g.Type.String(),
		GradientScale: "discrete",
		Points:        points,
		VisAssets:     assets,
	})
}

// UnmarshalJSON parses the persisted-state shape and validates the
// structural invariants; a malformed descriptor is rejected rather than
// repaired.
func (g *VisAssetGradient) UnmarshalJSON(data []byte) error {
	var raw visAssetGradientJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse gradient descriptor: %w", err)
	}
	typ, err := ParseGradientType(raw.GradientType)
	if err != nil {
		return fmt.Errorf("parse gradient descriptor: %w", err)
	}
	parsed := VisAssetGradient{
		UUID:   raw.UUID,
		Type:   typ,
		Points: raw.Points,
		Assets: raw.VisAssets,
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*g = parsed
	return nil
}
