package mesh

import "github.com/Faultbox/edgeloop/pkg/math"

// EdgeLength returns the distance between the endpoints of e.
func (t *Topology) EdgeLength(e EdgeID) (float64, error) {
	if err := t.checkEdge(e); err != nil {
		return 0, err
	}
	a, b := t.edges[e][0], t.edges[e][1]
	return t.positions[a].Distance(t.positions[b]), nil
}

// FaceArea returns the area of f, summing the fan of triangles from its
// first corner. The result is exact for planar faces.
func (t *Topology) FaceArea(f FaceID) (float64, error) {
	verts, err := t.FaceVertices(f)
	if err != nil {
		return 0, err
	}
	p0 := t.positions[verts[0]]
	var sum math.Vec3
	for i := 1; i+1 < len(verts); i++ {
		a := t.positions[verts[i]].Sub(p0)
		b := t.positions[verts[i+1]].Sub(p0)
		sum = sum.Add(a.Cross(b))
	}
	return sum.Length() / 2, nil
}
