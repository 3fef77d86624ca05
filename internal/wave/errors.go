package wave

import "errors"

// Domain errors for simulator construction and commands.
var (
	// ErrInvalidInterval indicates a non-positive tick interval.
	ErrInvalidInterval = errors.New("wave: interval must be positive")

	// ErrEmptyPalette indicates a palette with no colors.
	ErrEmptyPalette = errors.New("wave: palette is empty")

	// ErrInvalidFront indicates a front position outside the grid or a
	// direction other than -1 or +1.
	ErrInvalidFront = errors.New("wave: invalid wave front")
)
