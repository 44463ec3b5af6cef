package loom

import "errors"

// Contract violations surfaced to the editor. These are sentinel values
// so callers can distinguish a capacity rejection (user-facing notice)
// from a malformed descriptor (blocking validation error).
var (
	// ErrMalformedGradient reports a descriptor whose parallel lists
	// disagree in length or whose boundaries are out of order. Malformed
	// gradients are never auto-repaired; the editor refuses to open them.
	ErrMalformedGradient = errors.New("loom: malformed gradient descriptor")

	// ErrGradientFull reports an insert that would exceed the maximum
	// asset count. The gradient is left unchanged.
	ErrGradientFull = errors.New("loom: gradient is at maximum asset capacity")

	// ErrTypeMismatch reports an asset whose category does not match the
	// gradient's declared type.
	ErrTypeMismatch = errors.New("loom: asset type does not match gradient type")

	// ErrAssetNotFound reports an operation referencing an asset UUID
	// that is not part of the gradient.
	ErrAssetNotFound = errors.New("loom: asset not in gradient")

	// ErrSegmentTooNarrow reports an insert into a segment too narrow to
	// split into two segments of MinSegmentWidth. The gradient is left
	// unchanged.
	ErrSegmentTooNarrow = errors.New("loom: segment too narrow to split")
)
