package formats

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/edgeloop/pkg/math"
	"github.com/Faultbox/edgeloop/pkg/mesh"
)

// Snapshot is the YAML form of a mesh:
//
//	name: ring
//	vertices: [[0, 0, 0], [1, 0, 0], ...]
//	edges: [[0, 1], ...]     # optional, fixes edge ids
//	faces: [[0, 1, 2, 3], ...]
type Snapshot struct {
	Name     string       `yaml:"name,omitempty"`
	Vertices [][3]float64 `yaml:"vertices,flow"`
	Edges    [][2]int     `yaml:"edges,omitempty,flow"`
	Faces    [][]int      `yaml:"faces,flow"`
}

// NewSnapshot converts mesh data into its YAML form.
func NewSnapshot(name string, d mesh.Data) *Snapshot {
	s := &Snapshot{
		Name:     name,
		Vertices: make([][3]float64, len(d.Positions)),
		Edges:    d.Edges,
		Faces:    d.Faces,
	}
	for i, p := range d.Positions {
		s.Vertices[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return s
}

// Data converts the snapshot back into mesh data.
func (s *Snapshot) Data() mesh.Data {
	d := mesh.Data{
		Positions: make([]math.Vec3, len(s.Vertices)),
		Edges:     s.Edges,
		Faces:     s.Faces,
	}
	for i, v := range s.Vertices {
		d.Positions[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	return d
}

// ParseSnapshot parses a YAML mesh snapshot.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "parsing mesh snapshot")
	}
	return &s, nil
}

// ParseSnapshotFile parses a YAML mesh snapshot from disk.
func ParseSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading mesh snapshot")
	}
	return ParseSnapshot(data)
}

// Marshal encodes the snapshot as YAML.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	return data, errors.Wrap(err, "encoding mesh snapshot")
}

// SaveTo writes the snapshot to path.
func (s *Snapshot) SaveTo(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "writing mesh snapshot")
}
