package mesh

import "fmt"

func (t *Topology) loop(l LoopID) (*loopRecord, error) {
	if l < 0 || int(l) >= len(t.loops) {
		return nil, fmt.Errorf("%w: loop %d (have %d)", ErrInvalidIndex, l, len(t.loops))
	}
	return &t.loops[l], nil
}

// LoopVertex returns the corner vertex of l.
func (t *Topology) LoopVertex(l LoopID) (VertexID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return 0, err
	}
	return rec.vert, nil
}

// LoopEdge returns the edge leaving the corner of l along its face.
func (t *Topology) LoopEdge(l LoopID) (EdgeID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return 0, err
	}
	return rec.edge, nil
}

// EdgeOf is an alias of LoopEdge.
func (t *Topology) EdgeOf(l LoopID) (EdgeID, error) {
	return t.LoopEdge(l)
}

// LoopFace returns the face owning l.
func (t *Topology) LoopFace(l LoopID) (FaceID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return 0, err
	}
	return rec.face, nil
}

// LoopNext returns the following corner of the same face.
func (t *Topology) LoopNext(l LoopID) (LoopID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return NoLoop, err
	}
	return rec.next, nil
}

// LoopPrev returns the preceding corner of the same face.
func (t *Topology) LoopPrev(l LoopID) (LoopID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return NoLoop, err
	}
	return rec.prev, nil
}

// LoopRadialNext returns the next loop sharing l's edge.
func (t *Topology) LoopRadialNext(l LoopID) (LoopID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return NoLoop, err
	}
	return rec.radialNext, nil
}

// LoopRadialPrev returns the previous loop sharing l's edge.
func (t *Topology) LoopRadialPrev(l LoopID) (LoopID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return NoLoop, err
	}
	return rec.radialPrev, nil
}

// NextAroundQuad advances a loop walk by one quad: step to the previous
// corner of the face, cross to the adjoining face through the radial link,
// then step to that face's previous corner.
//
// When the corner vertex of l has valence 4 and the faces around it are
// consistently wound, the returned loop lies on the edge opposite l's edge
// across that vertex, and its corner is the next vertex of the edge loop.
func (t *Topology) NextAroundQuad(l LoopID) (LoopID, error) {
	rec, err := t.loop(l)
	if err != nil {
		return NoLoop, err
	}
	prev := &t.loops[rec.prev]
	radial := &t.loops[prev.radialPrev]
	return radial.prev, nil
}
