package formats

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/Faultbox/edgeloop/pkg/mesh"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"ring.obj", FormatOBJ, false},
		{"dir/RING.OBJ", FormatOBJ, false},
		{"ring.yaml", FormatYAML, false},
		{"ring.yml", FormatYAML, false},
		{"ring.stl", "", true},
		{"ring", "", true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("DetectFormat(%q): expected ErrUnsupportedFormat, got %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"obj", ".OBJ"} {
		if f, err := ParseFormat(in); err != nil || f != FormatOBJ {
			t.Errorf("ParseFormat(%q) = %q, %v", in, f, err)
		}
	}
	if f, err := ParseFormat("yml"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(yml) = %q, %v", f, err)
	}
	if _, err := ParseFormat("ply"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSaveLoadMesh(t *testing.T) {
	dir := t.TempDir()
	src := mesh.Box(2, 4)

	for _, format := range []Format{FormatOBJ, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "nested", "box."+string(format))
			if err := SaveMesh(path, "box", format, src); err != nil {
				t.Fatalf("SaveMesh failed: %v", err)
			}
			got, err := LoadMesh(path)
			if err != nil {
				t.Fatalf("LoadMesh failed: %v", err)
			}
			if len(got.Positions) != len(src.Positions) {
				t.Errorf("expected %d vertices, got %d", len(src.Positions), len(got.Positions))
			}
			if len(got.Faces) != len(src.Faces) {
				t.Errorf("expected %d faces, got %d", len(src.Faces), len(got.Faces))
			}
			if got.Positions[5] != src.Positions[5] {
				t.Errorf("vertex 5: expected %v, got %v", src.Positions[5], got.Positions[5])
			}
			topo, err := mesh.Build(*got)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if topo.NumEdges() != 48 {
				t.Errorf("expected 48 edges, got %d", topo.NumEdges())
			}
		})
	}

	if _, err := LoadMesh(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := SaveMesh(filepath.Join(dir, "box.ply"), "box", "ply", src); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
