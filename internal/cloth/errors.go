package cloth

import "errors"

// Domain errors for mesh construction. All are construction-time: once a
// Simulation exists, stepping never fails.
var (
	// ErrGridTooSmall indicates width or height below the 2x2 minimum.
	ErrGridTooSmall = errors.New("cloth: grid must be at least 2x2")

	// ErrBadSpacing indicates a zero or negative grid spacing.
	ErrBadSpacing = errors.New("cloth: spacing must be positive")

	// ErrBadMass indicates a zero or negative particle mass.
	ErrBadMass = errors.New("cloth: mass must be positive")

	// ErrBadGravity indicates a negative gravity magnitude.
	ErrBadGravity = errors.New("cloth: gravity must be non-negative")

	// ErrBadTearDistance indicates a zero or negative tear threshold.
	ErrBadTearDistance = errors.New("cloth: tear distance must be positive")

	// ErrBadPointerRange indicates a zero or negative pointer pick radius.
	ErrBadPointerRange = errors.New("cloth: pointer distance must be positive")

	// ErrBadInfluence indicates a negative pointer drag influence.
	ErrBadInfluence = errors.New("cloth: pointer influence must be non-negative")

	// ErrBadIterations indicates a solver iteration count below 1.
	ErrBadIterations = errors.New("cloth: solver iterations must be at least 1")
)
