package meander

import "errors"

var (
	// ErrInvalidArgument is returned for grid sizes below 2, insufficient
	// point sets and malformed configuration values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTriangulation is returned when no triangulation exists for a point set.
	ErrTriangulation = errors.New("no triangulation exists")
)
