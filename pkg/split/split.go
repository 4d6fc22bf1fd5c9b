// Package split applies an edge loop as a cut: it groups faces into regions
// bounded by the selected edges and separates the mesh into two pieces.
package split

import (
	"errors"
	"fmt"
	"sort"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/Faultbox/edgeloop/pkg/mesh"
)

// ErrNotBisecting is returned when a cut does not divide the mesh into
// exactly two regions.
var ErrNotBisecting = errors.New("cut does not bisect the mesh")

// Cut is the set of boundary edges. *edgeloop.Selection satisfies it.
type Cut interface {
	Contains(e mesh.EdgeID) bool
}

// Partition groups every face of a mesh into regions that are connected
// without crossing a cut edge.
type Partition struct {
	// Regions are sorted by size, smallest first; equal sizes keep the
	// order of their lowest face id. Faces within a region are ascending.
	Regions [][]mesh.FaceID
	region  []int
}

// Bisects reports whether the cut produced exactly two regions.
func (p *Partition) Bisects() bool {
	return len(p.Regions) == 2
}

// RegionOf returns the index into Regions holding f, or -1.
func (p *Partition) RegionOf(f mesh.FaceID) int {
	if f < 0 || int(f) >= len(p.region) {
		return -1
	}
	return p.region[f]
}

// Regions flood-fills faces across edges that are not part of cut.
func Regions(topo *mesh.Topology, cut Cut) (*Partition, error) {
	n := topo.NumFaces()
	label := make([]int, n)
	for i := range label {
		label[i] = -1
	}

	var regions [][]mesh.FaceID
	queue := linkedlistqueue.New()
	for start := 0; start < n; start++ {
		if label[start] >= 0 {
			continue
		}
		id := len(regions)
		label[start] = id
		region := []mesh.FaceID{mesh.FaceID(start)}
		queue.Enqueue(mesh.FaceID(start))

		for !queue.Empty() {
			item, _ := queue.Dequeue()
			neighbors, err := adjacentFaces(topo, item.(mesh.FaceID), cut)
			if err != nil {
				return nil, err
			}
			for _, g := range neighbors {
				if label[g] < 0 {
					label[g] = id
					region = append(region, g)
					queue.Enqueue(g)
				}
			}
		}
		sort.Slice(region, func(i, j int) bool { return region[i] < region[j] })
		regions = append(regions, region)
	}

	// Regions were discovered in lowest-face order, so a stable sort by size
	// keeps that order among equals.
	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(regions[order[i]]) < len(regions[order[j]])
	})
	p := &Partition{
		Regions: make([][]mesh.FaceID, len(regions)),
		region:  make([]int, n),
	}
	remap := make([]int, len(regions))
	for newID, oldID := range order {
		p.Regions[newID] = regions[oldID]
		remap[oldID] = newID
	}
	for f, old := range label {
		p.region[f] = remap[old]
	}
	return p, nil
}

// adjacentFaces walks the corners of f and, for each edge not in cut, the
// radial cycle of faces sharing it.
func adjacentFaces(topo *mesh.Topology, f mesh.FaceID, cut Cut) ([]mesh.FaceID, error) {
	loops, err := topo.FaceLoops(f)
	if err != nil {
		return nil, err
	}
	var faces []mesh.FaceID
	first := loops[0]
	l := first
	for {
		e, err := topo.LoopEdge(l)
		if err != nil {
			return nil, err
		}
		if !cut.Contains(e) {
			if faces, err = radialFaces(topo, l, faces); err != nil {
				return nil, err
			}
		}
		if l, err = topo.LoopNext(l); err != nil {
			return nil, err
		}
		if l == first {
			return faces, nil
		}
	}
}

// radialFaces appends the faces of every other loop on l's edge.
func radialFaces(topo *mesh.Topology, l mesh.LoopID, faces []mesh.FaceID) ([]mesh.FaceID, error) {
	r, err := topo.LoopRadialNext(l)
	for err == nil && r != l {
		var g mesh.FaceID
		if g, err = topo.LoopFace(r); err != nil {
			break
		}
		faces = append(faces, g)
		r, err = topo.LoopRadialNext(r)
	}
	return faces, err
}

// Separate splits the mesh along a bisecting partition. The inner piece is
// the smaller region; vertices on the cut are duplicated into both pieces.
// Loose edges are dropped.
func Separate(topo *mesh.Topology, p *Partition) (inner, outer mesh.Data, err error) {
	if !p.Bisects() {
		return mesh.Data{}, mesh.Data{}, fmt.Errorf("%w: %d regions", ErrNotBisecting, len(p.Regions))
	}
	if inner, err = extract(topo, p.Regions[0]); err != nil {
		return mesh.Data{}, mesh.Data{}, err
	}
	if outer, err = extract(topo, p.Regions[1]); err != nil {
		return mesh.Data{}, mesh.Data{}, err
	}
	return inner, outer, nil
}

// extract copies faces into a fresh Data, renumbering vertices in order of
// first use.
func extract(topo *mesh.Topology, faces []mesh.FaceID) (mesh.Data, error) {
	var d mesh.Data
	remap := make(map[mesh.VertexID]int)
	for _, f := range faces {
		verts, err := topo.FaceVertices(f)
		if err != nil {
			return mesh.Data{}, err
		}
		face := make([]int, len(verts))
		for i, v := range verts {
			id, ok := remap[v]
			if !ok {
				pos, err := topo.Position(v)
				if err != nil {
					return mesh.Data{}, err
				}
				id = len(d.Positions)
				remap[v] = id
				d.Positions = append(d.Positions, pos)
			}
			face[i] = id
		}
		d.Faces = append(d.Faces, face)
	}
	return d, nil
}
