// Package mesh builds an immutable, index-based boundary representation of a
// polygon mesh: vertices, edges, faces and the per-corner loops that link them.
//
// A Topology is constructed once from caller-owned Data and then only read.
// Any number of goroutines may query the same Topology concurrently.
package mesh

import "github.com/Faultbox/edgeloop/pkg/math"

// VertexID indexes Topology vertices.
type VertexID int

// EdgeID indexes Topology edges.
type EdgeID int

// FaceID indexes Topology faces.
type FaceID int

// LoopID indexes face corners (half-edges). Loop l of face f pairs the corner
// vertex with the edge leaving it along the face winding.
type LoopID int

// NoLoop marks the absence of a loop, e.g. on an edge without faces.
const NoLoop LoopID = -1

// Data is the raw mesh a Topology is built from.
//
// Edges is optional. Listed edges keep their list position as EdgeID, which
// lets callers preserve a host editor's edge numbering. Edges implied by
// faces but missing from the list are appended in face order.
type Data struct {
	Positions []math.Vec3
	Edges     [][2]int
	Faces     [][]int
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Bounds returns the bounding box of the positions, or a zero box for an
// empty mesh.
func (d Data) Bounds() Bounds {
	if len(d.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: d.Positions[0], Max: d.Positions[0]}
	for _, p := range d.Positions[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}

// Translate returns a copy of d with every position moved by offset.
func (d Data) Translate(offset math.Vec3) Data {
	out := d.Clone()
	for i := range out.Positions {
		out.Positions[i] = out.Positions[i].Add(offset)
	}
	return out
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := Data{
		Positions: append([]math.Vec3(nil), d.Positions...),
		Edges:     append([][2]int(nil), d.Edges...),
		Faces:     make([][]int, len(d.Faces)),
	}
	for i, f := range d.Faces {
		out.Faces[i] = append([]int(nil), f...)
	}
	return out
}
