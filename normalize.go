package loom

// DataRange is a [Min, Max] interval that remaps raw scalar data into
// the normalized [0, 1] domain.
type DataRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Normalize remaps value into [0, 1] by clamp((value-min)/(max-min), 0, 1).
// A degenerate range (min == max) returns 0.5 rather than dividing by
// zero: every value of a constant variable maps to the middle of the
// colormap.
func Normalize(value, min, max float64) float64 {
	if min == max {
		return 0.5
	}
	return clamp01((value - min) / (max - min))
}

// Normalize remaps value into [0, 1] against the range.
func (r DataRange) Normalize(value float64) float64 {
	return Normalize(value, r.Min, r.Max)
}

// RangeKey addresses a custom range for one (key data, variable) pair.
type RangeKey struct {
	KeyData  string
	Variable string
}

// RangeSet resolves the data range for a variable with the precedence
// specific (key data, variable) pair > per-variable global > dataset
// observed min/max. Ranges are created on first need and custom entries
// are deleted outright when the custom toggle is turned off.
type RangeSet struct {
	specific map[RangeKey]DataRange
	global   map[string]DataRange
	observed map[string]DataRange
}

// NewRangeSet creates an empty range set.
func NewRangeSet() *RangeSet {
	return &RangeSet{
		specific: make(map[RangeKey]DataRange),
		global:   make(map[string]DataRange),
		observed: make(map[string]DataRange),
	}
}

// Observe widens the dataset-observed range of a variable to cover
// [min, max]. The first observation initializes the range.
func (s *RangeSet) Observe(variable string, min, max float64) {
	r, ok := s.observed[variable]
	if !ok {
		s.observed[variable] = DataRange{Min: min, Max: max}
		return
	}
	if min < r.Min {
		r.Min = min
	}
	if max > r.Max {
		r.Max = max
	}
	s.observed[variable] = r
}

// SetGlobal overrides the per-variable global range.
func (s *RangeSet) SetGlobal(variable string, r DataRange) {
	s.global[variable] = r
}

// SetCustom sets a specific range for one (key data, variable) pair.
func (s *RangeSet) SetCustom(keyData, variable string, r DataRange) {
	s.specific[RangeKey{KeyData: keyData, Variable: variable}] = r
}

// HasCustom reports whether a specific range exists for the pair.
func (s *RangeSet) HasCustom(keyData, variable string) bool {
	_, ok := s.specific[RangeKey{KeyData: keyData, Variable: variable}]
	return ok
}

// ClearCustom deletes the specific range for the pair, reverting it to
// the global (or observed) range. The entry is removed, not hidden.
func (s *RangeSet) ClearCustom(keyData, variable string) {
	delete(s.specific, RangeKey{KeyData: keyData, Variable: variable})
}

// Resolve returns the effective range for the pair. With no range
// recorded at any level the unit range [0, 1] is returned, leaving
// already-normalized data untouched.
func (s *RangeSet) Resolve(keyData, variable string) DataRange {
	if r, ok := s.specific[RangeKey{KeyData: keyData, Variable: variable}]; ok {
		return r
	}
	if r, ok := s.global[variable]; ok {
		return r
	}
	if r, ok := s.observed[variable]; ok {
		return r
	}
	return DataRange{Min: 0, Max: 1}
}

// Normalize remaps a raw value of the pair's variable through the
// effective range.
func (s *RangeSet) Normalize(keyData, variable string, value float64) float64 {
	return s.Resolve(keyData, variable).Normalize(value)
}
