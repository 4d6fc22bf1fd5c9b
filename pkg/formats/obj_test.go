package formats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/Faultbox/edgeloop/pkg/math"
	"github.com/Faultbox/edgeloop/pkg/mesh"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0.5
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3//1 -1
l 1 3 3
usemtl none
`

func TestParseOBJ_Quad(t *testing.T) {
	d, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(d.Positions) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(d.Positions))
	}
	if d.Positions[3] != (math.Vec3{X: 0, Y: 1, Z: 0.5}) {
		t.Errorf("expected vertex 3 at (0,1,0.5), got %v", d.Positions[3])
	}
	if len(d.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(d.Faces))
	}
	want := []int{0, 1, 2, 3}
	for i, v := range d.Faces[0] {
		if v != want[i] {
			t.Errorf("corner %d: expected %d, got %d", i, want[i], v)
		}
	}
	if len(d.Edges) != 1 || d.Edges[0] != [2]int{0, 2} {
		t.Errorf("expected one polyline edge (0,2), got %v", d.Edges)
	}

	topo, err := mesh.Build(*d)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if topo.NumEdges() != 5 {
		t.Errorf("expected 5 edges, got %d", topo.NumEdges())
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short vertex", "v 1 2\n", ErrMalformedOBJ},
		{"bad float", "v 1 x 2\n", ErrMalformedOBJ},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", ErrMalformedOBJ},
		{"zero reference", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", ErrOBJIndex},
		{"forward reference", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrOBJIndex},
		{"bad reference", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a 1 2\n", ErrMalformedOBJ},
		{"short polyline", "v 0 0 0\nl 1\n", ErrMalformedOBJ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if err != nil && !strings.Contains(err.Error(), "line") {
				t.Errorf("expected line number in error, got %q", err)
			}
		})
	}
}

func TestWriteOBJ_RoundTripsTopology(t *testing.T) {
	src := mesh.Torus(8, 4, 3, 1)
	src.Edges = [][2]int{{0, 1}, {0, 16}}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, "torus", src); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "o torus\n") {
		t.Errorf("expected object header, got %q", out[:20])
	}
	// 0-1 is a face edge; only the diagonal 0-16 is a polyline.
	if strings.Count(out, "\nl ") != 1 || !strings.Contains(out, "l 1 17\n") {
		t.Errorf("expected a single polyline 'l 1 17'")
	}

	got, err := ParseOBJ(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	a, err := mesh.Build(src)
	if err != nil {
		t.Fatalf("Build(src) failed: %v", err)
	}
	b, err := mesh.Build(*got)
	if err != nil {
		t.Fatalf("Build(parsed) failed: %v", err)
	}
	if a.NumEdges() != b.NumEdges() || a.NumFaces() != b.NumFaces() || a.NumVertices() != b.NumVertices() {
		t.Errorf("topology changed: V/E/F %d/%d/%d -> %d/%d/%d",
			a.NumVertices(), a.NumEdges(), a.NumFaces(),
			b.NumVertices(), b.NumEdges(), b.NumFaces())
	}
	for i := range src.Positions {
		if src.Positions[i] != got.Positions[i] {
			t.Fatalf("vertex %d: %v != %v", i, src.Positions[i], got.Positions[i])
		}
	}
}
