package mesh

import "errors"

// Topology errors.
var (
	ErrInvalidIndex   = errors.New("index out of range")
	ErrDegenerateEdge = errors.New("edge endpoints are identical")
	ErrDuplicateEdge  = errors.New("duplicate edge")
	ErrDegenerateFace = errors.New("face needs at least 3 distinct corners")
	ErrNoEdge         = errors.New("no edge between vertices")
)
