package terrain

import "errors"

var (
	// ErrTooSmall is returned for grids without at least one cell.
	ErrTooSmall = errors.New("heightmap needs at least 2x2 samples")
	// ErrSizeMismatch is returned when the sample count does not match the dimensions.
	ErrSizeMismatch = errors.New("sample count does not match dimensions")
	// ErrNonFinite is returned for NaN or infinite samples.
	ErrNonFinite = errors.New("non-finite height sample")
)
