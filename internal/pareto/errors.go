package pareto

import "errors"

var (
	// ErrDimensionMismatch is returned when datums carry vectors of different lengths.
	ErrDimensionMismatch = errors.New("score vectors differ in length")
	// ErrDuplicateName is returned when two datums share a name.
	ErrDuplicateName = errors.New("duplicate datum name")
	// ErrEmptyName is returned for a datum without a name.
	ErrEmptyName = errors.New("datum name is empty")
	// ErrNonFinite is returned for NaN or infinite scores.
	ErrNonFinite = errors.New("score is not finite")
	// ErrNoDimensions is returned for a datum with an empty score vector.
	ErrNoDimensions = errors.New("score vector is empty")
	// ErrReferenceIndex is returned when the ranking dimension is out of range.
	ErrReferenceIndex = errors.New("reference index out of range")
	// ErrInvalidSmoothness is returned for a fuzzy smoothness outside [1, MaxSmoothness].
	ErrInvalidSmoothness = errors.New("smoothness out of range")
	// ErrZeroCeiling is returned when a dimension has no positive value to normalize by.
	ErrZeroCeiling = errors.New("dimension maximum is not positive")
	// ErrNegativeScore is returned when a fuzzy filter sees a negative score.
	ErrNegativeScore = errors.New("negative score cannot be quantized")
	// ErrUnknownMode is returned by NewFilter for an unrecognised mode.
	ErrUnknownMode = errors.New("unknown filter mode")
)
