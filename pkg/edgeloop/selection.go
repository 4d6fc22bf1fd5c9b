package edgeloop

import (
	"slices"

	"github.com/Faultbox/edgeloop/pkg/mesh"
)

// Status is the terminal state of a walk.
type Status int

const (
	// Closed means the walk came back to an edge it had already selected.
	Closed Status = iota
	// Stuck means the walk reached a vertex whose valence is not 4. The
	// selection is an open chain and usually cannot bisect a closed mesh.
	Stuck
)

// String returns "closed" or "stuck".
func (s Status) String() string {
	if s == Closed {
		return "closed"
	}
	return "stuck"
}

// MarshalText lets reports serialize the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Selection is the result of one walk. It owns its visited set, so passes
// over a shared Topology never interfere.
type Selection struct {
	Seed   mesh.EdgeID
	Status Status
	// Edges lists selected edges in the order they were reached, seed first.
	Edges []mesh.EdgeID

	selected []bool
}

func newSelection(seed mesh.EdgeID, numEdges int) *Selection {
	return &Selection{
		Seed:     seed,
		Status:   Stuck,
		selected: make([]bool, numEdges),
	}
}

func (s *Selection) mark(e mesh.EdgeID) {
	s.selected[e] = true
	s.Edges = append(s.Edges, e)
}

// Contains reports whether e was selected.
func (s *Selection) Contains(e mesh.EdgeID) bool {
	return e >= 0 && int(e) < len(s.selected) && s.selected[e]
}

// Len returns the number of selected edges.
func (s *Selection) Len() int {
	return len(s.Edges)
}

// Sorted returns the selected edges in ascending id order.
func (s *Selection) Sorted() []mesh.EdgeID {
	out := slices.Clone(s.Edges)
	slices.Sort(out)
	return out
}
