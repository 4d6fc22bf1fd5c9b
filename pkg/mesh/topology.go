package mesh

import (
	"fmt"

	"github.com/Faultbox/edgeloop/pkg/math"
)

type loopRecord struct {
	vert       VertexID
	edge       EdgeID
	face       FaceID
	next, prev LoopID
	// Radial links cycle over every loop sharing the edge. A boundary loop
	// is its own radial neighbor.
	radialNext, radialPrev LoopID
}

type faceRecord struct {
	first LoopID
	size  int
}

type edgeKey [2]VertexID

func makeEdgeKey(a, b VertexID) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Topology is the read-only adjacency snapshot of a mesh.
type Topology struct {
	positions []math.Vec3
	edges     [][2]VertexID
	faces     []faceRecord
	loops     []loopRecord

	vertEdges [][]EdgeID
	edgeLoops [][]LoopID
	lookup    map[edgeKey]EdgeID
}

// Build validates d and computes incidence and loop links in O(V+E+L).
func Build(d Data) (*Topology, error) {
	nv := len(d.Positions)
	t := &Topology{
		positions: append([]math.Vec3(nil), d.Positions...),
		edges:     make([][2]VertexID, 0, len(d.Edges)),
		lookup:    make(map[edgeKey]EdgeID, len(d.Edges)),
	}

	checkVertex := func(v int) error {
		if v < 0 || v >= nv {
			return fmt.Errorf("%w: vertex %d (have %d)", ErrInvalidIndex, v, nv)
		}
		return nil
	}

	for i, e := range d.Edges {
		if err := checkVertex(e[0]); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if err := checkVertex(e[1]); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if e[0] == e[1] {
			return nil, fmt.Errorf("edge %d: %w", i, ErrDegenerateEdge)
		}
		key := makeEdgeKey(VertexID(e[0]), VertexID(e[1]))
		if prev, ok := t.lookup[key]; ok {
			return nil, fmt.Errorf("edge %d: %w (same as edge %d)", i, ErrDuplicateEdge, prev)
		}
		t.lookup[key] = EdgeID(len(t.edges))
		t.edges = append(t.edges, [2]VertexID{VertexID(e[0]), VertexID(e[1])})
	}

	corners := 0
	for fi, f := range d.Faces {
		if len(f) < 3 {
			return nil, fmt.Errorf("face %d: %w", fi, ErrDegenerateFace)
		}
		seen := make(map[int]struct{}, len(f))
		for _, v := range f {
			if err := checkVertex(v); err != nil {
				return nil, fmt.Errorf("face %d: %w", fi, err)
			}
			if _, dup := seen[v]; dup {
				return nil, fmt.Errorf("face %d: %w (vertex %d repeats)", fi, ErrDegenerateFace, v)
			}
			seen[v] = struct{}{}
		}
		corners += len(f)
	}

	t.faces = make([]faceRecord, 0, len(d.Faces))
	t.loops = make([]loopRecord, 0, corners)
	for fi, f := range d.Faces {
		n := len(f)
		first := LoopID(len(t.loops))
		for i := range f {
			a, b := VertexID(f[i]), VertexID(f[(i+1)%n])
			key := makeEdgeKey(a, b)
			e, ok := t.lookup[key]
			if !ok {
				e = EdgeID(len(t.edges))
				t.lookup[key] = e
				t.edges = append(t.edges, [2]VertexID{a, b})
			}
			t.loops = append(t.loops, loopRecord{
				vert: a,
				edge: e,
				face: FaceID(fi),
				next: first + LoopID((i+1)%n),
				prev: first + LoopID((i+n-1)%n),
			})
		}
		t.faces = append(t.faces, faceRecord{first: first, size: n})
	}

	t.edgeLoops = make([][]LoopID, len(t.edges))
	for i, l := range t.loops {
		t.edgeLoops[l.edge] = append(t.edgeLoops[l.edge], LoopID(i))
	}
	for _, radial := range t.edgeLoops {
		n := len(radial)
		for i, l := range radial {
			t.loops[l].radialNext = radial[(i+1)%n]
			t.loops[l].radialPrev = radial[(i+n-1)%n]
		}
	}

	t.vertEdges = make([][]EdgeID, nv)
	for e, ends := range t.edges {
		t.vertEdges[ends[0]] = append(t.vertEdges[ends[0]], EdgeID(e))
		t.vertEdges[ends[1]] = append(t.vertEdges[ends[1]], EdgeID(e))
	}

	return t, nil
}

// NumVertices returns the vertex count.
func (t *Topology) NumVertices() int { return len(t.positions) }

// NumEdges returns the edge count.
func (t *Topology) NumEdges() int { return len(t.edges) }

// NumFaces returns the face count.
func (t *Topology) NumFaces() int { return len(t.faces) }

// NumLoops returns the face-corner count.
func (t *Topology) NumLoops() int { return len(t.loops) }

func (t *Topology) checkVertex(v VertexID) error {
	if v < 0 || int(v) >= len(t.positions) {
		return fmt.Errorf("%w: vertex %d (have %d)", ErrInvalidIndex, v, len(t.positions))
	}
	return nil
}

func (t *Topology) checkEdge(e EdgeID) error {
	if e < 0 || int(e) >= len(t.edges) {
		return fmt.Errorf("%w: edge %d (have %d)", ErrInvalidIndex, e, len(t.edges))
	}
	return nil
}

func (t *Topology) checkFace(f FaceID) error {
	if f < 0 || int(f) >= len(t.faces) {
		return fmt.Errorf("%w: face %d (have %d)", ErrInvalidIndex, f, len(t.faces))
	}
	return nil
}

// Valence returns the number of edges incident to v.
func (t *Topology) Valence(v VertexID) (int, error) {
	if err := t.checkVertex(v); err != nil {
		return 0, err
	}
	return len(t.vertEdges[v]), nil
}

// IncidentEdges returns the edges touching v in ascending id order.
// The returned slice is a copy.
func (t *Topology) IncidentEdges(v VertexID) ([]EdgeID, error) {
	if err := t.checkVertex(v); err != nil {
		return nil, err
	}
	return append([]EdgeID(nil), t.vertEdges[v]...), nil
}

// Position returns the coordinates of v.
func (t *Topology) Position(v VertexID) (math.Vec3, error) {
	if err := t.checkVertex(v); err != nil {
		return math.Vec3{}, err
	}
	return t.positions[v], nil
}

// Endpoints returns the two vertices of e in their stored order.
func (t *Topology) Endpoints(e EdgeID) (VertexID, VertexID, error) {
	if err := t.checkEdge(e); err != nil {
		return 0, 0, err
	}
	return t.edges[e][0], t.edges[e][1], nil
}

// OtherVertex returns the endpoint of e that is not v.
func (t *Topology) OtherVertex(e EdgeID, v VertexID) (VertexID, error) {
	a, b, err := t.Endpoints(e)
	if err != nil {
		return 0, err
	}
	switch v {
	case a:
		return b, nil
	case b:
		return a, nil
	default:
		return 0, fmt.Errorf("%w: vertex %d is not on edge %d", ErrInvalidIndex, v, e)
	}
}

// FindEdge returns the edge joining a and b.
func (t *Topology) FindEdge(a, b VertexID) (EdgeID, error) {
	if err := t.checkVertex(a); err != nil {
		return 0, err
	}
	if err := t.checkVertex(b); err != nil {
		return 0, err
	}
	e, ok := t.lookup[makeEdgeKey(a, b)]
	if !ok {
		return 0, fmt.Errorf("%w: %d-%d", ErrNoEdge, a, b)
	}
	return e, nil
}

// EdgeLoops returns the loops using e in radial order. Loose edges have none.
func (t *Topology) EdgeLoops(e EdgeID) ([]LoopID, error) {
	if err := t.checkEdge(e); err != nil {
		return nil, err
	}
	return append([]LoopID(nil), t.edgeLoops[e]...), nil
}

// EdgeFaces returns the faces bordering e in radial order.
func (t *Topology) EdgeFaces(e EdgeID) ([]FaceID, error) {
	if err := t.checkEdge(e); err != nil {
		return nil, err
	}
	faces := make([]FaceID, len(t.edgeLoops[e]))
	for i, l := range t.edgeLoops[e] {
		faces[i] = t.loops[l].face
	}
	return faces, nil
}

// FaceLoops returns the loops of f in winding order.
func (t *Topology) FaceLoops(f FaceID) ([]LoopID, error) {
	if err := t.checkFace(f); err != nil {
		return nil, err
	}
	rec := t.faces[f]
	loops := make([]LoopID, rec.size)
	for i := range loops {
		loops[i] = rec.first + LoopID(i)
	}
	return loops, nil
}

// FaceVertices returns the corner vertices of f in winding order.
func (t *Topology) FaceVertices(f FaceID) ([]VertexID, error) {
	loops, err := t.FaceLoops(f)
	if err != nil {
		return nil, err
	}
	verts := make([]VertexID, len(loops))
	for i, l := range loops {
		verts[i] = t.loops[l].vert
	}
	return verts, nil
}
