package loom

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ValueKind identifies a primitive value's display format. Each kind has
// a unit suffix, a scale between internal and display units, and the
// step the editor nudges by. The table replaces the runtime regex lookup
// the browser editor used.
type ValueKind int

const (
	// Percent displays an internal [0,1] fraction as "42%".
	Percent ValueKind = iota
	// Degrees displays an angle as "90°".
	Degrees
	// Meters displays a length as "3m".
	Meters
)

type kindSpec struct {
	suffix    string
	scale     float64 // display units per internal unit
	increment float64 // display-unit nudge step
}

var kindSpecs = [...]kindSpec{
	Percent: {suffix: "%", scale: 100, increment: 5},
	Degrees: {suffix: "°", scale: 1, increment: 10},
	Meters:  {suffix: "m", scale: 1, increment: 0.1},
}

// Suffix returns the unit suffix of the kind.
func (k ValueKind) Suffix() string { return kindSpecs[k].suffix }

// Increment returns the display-unit step the editor nudges values by.
func (k ValueKind) Increment() float64 { return kindSpecs[k].increment }

// Format renders an internal value as its display string, e.g.
// Percent.Format(0.42) == "42%". Display values are rounded to six
// decimals so formatting stays stable across parse/format cycles.
func (k ValueKind) Format(v float64) string {
	display := math.Round(v*kindSpecs[k].scale*1e6) / 1e6
	return strconv.FormatFloat(display, 'f', -1, 64) + kindSpecs[k].suffix
}

// Parse converts a display string back to an internal value.
func (k ValueKind) Parse(s string) (float64, error) {
	body, ok := strings.CutSuffix(strings.TrimSpace(s), kindSpecs[k].suffix)
	if !ok {
		return 0, fmt.Errorf("parse %q: missing %q suffix", s, kindSpecs[k].suffix)
	}
	display, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return display / kindSpecs[k].scale, nil
}

// PrimitiveGradient maps positions in [0, 1] to display-string encoded
// primitive values, most commonly an opacity map ("0%" .. "100%").
// Points and Values are parallel lists: a point and its paired value are
// added and removed together, never independently.
type PrimitiveGradient struct {
	Kind   ValueKind `json:"-"`
	Points []float64 `json:"points"`
	Values []string  `json:"values"`
}

// NewPrimitiveGradient creates an empty gradient of the given kind.
func NewPrimitiveGradient(kind ValueKind) *PrimitiveGradient {
	return &PrimitiveGradient{Kind: kind}
}

// Validate checks the parallel-list and ordering invariants. A gradient
// that fails validation blocks the editor; it is not auto-repaired.
func (g *PrimitiveGradient) Validate() error {
	if len(g.Points) != len(g.Values) {
		return fmt.Errorf("%w: %d points, %d values", ErrMalformedGradient, len(g.Points), len(g.Values))
	}
	for i := 1; i < len(g.Points); i++ {
		if g.Points[i] < g.Points[i-1] {
			return fmt.Errorf("%w: points not sorted at index %d", ErrMalformedGradient, i)
		}
	}
	for i, v := range g.Values {
		if _, err := g.Kind.Parse(v); err != nil {
			return fmt.Errorf("%w: value %d: %v", ErrMalformedGradient, i, err)
		}
	}
	return nil
}

// AddStop inserts a (point, value) pair, keeping points sorted.
func (g *PrimitiveGradient) AddStop(point float64, value string) error {
	if _, err := g.Kind.Parse(value); err != nil {
		return err
	}
	i := sort.SearchFloat64s(g.Points, point)
	g.Points = append(g.Points, 0)
	copy(g.Points[i+1:], g.Points[i:])
	g.Points[i] = point
	g.Values = append(g.Values, "")
	copy(g.Values[i+1:], g.Values[i:])
	g.Values[i] = value
	return nil
}

// RemoveStop deletes the pair at index i.
func (g *PrimitiveGradient) RemoveStop(i int) error {
	if i < 0 || i >= len(g.Points) {
		return fmt.Errorf("remove stop: index %d out of range [0,%d)", i, len(g.Points))
	}
	g.Points = append(g.Points[:i], g.Points[i+1:]...)
	g.Values = append(g.Values[:i], g.Values[i+1:]...)
	return nil
}

// ToColormap resolves the gradient into a grayscale colormap: each
// (point, value) pair becomes a control point whose gray level is the
// parsed internal value. The result feeds the same strip-rendering and
// lookup machinery as color colormaps.
func (g *PrimitiveGradient) ToColormap() (*Colormap, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	cm := NewColormap()
	for i, p := range g.Points {
		v, err := g.Kind.Parse(g.Values[i])
		if err != nil {
			return nil, err
		}
		v = clamp01(v)
		cm.AddControlPoint(p, RGB(v, v, v))
	}
	return cm, nil
}
