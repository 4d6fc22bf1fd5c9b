package edgeloop

import "errors"

// Selection errors. Index failures surface as mesh.ErrInvalidIndex.
var (
	ErrDegenerateVertex = errors.New("seed vertex has no incident edges")
	ErrZeroMagnitude    = errors.New("endpoint projects onto the axis")
)
