// Package formats reads and writes the mesh files the edgeloop tools work
// on: Wavefront OBJ and YAML mesh snapshots.
package formats

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/edgeloop/pkg/mesh"
)

// ErrUnsupportedFormat is returned for file extensions no codec handles.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Format names a mesh file encoding.
type Format string

// Supported formats.
const (
	FormatOBJ  Format = "obj"
	FormatYAML Format = "yaml"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", path)
	}
}

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatOBJ, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
	}
}

// LoadMesh reads a mesh file, choosing the codec by extension.
func LoadMesh(path string) (*mesh.Data, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatOBJ:
		return ParseOBJFile(path)
	default:
		s, err := ParseSnapshotFile(path)
		if err != nil {
			return nil, err
		}
		d := s.Data()
		return &d, nil
	}
}

// SaveMesh writes d to path in the given format.
func SaveMesh(path, name string, format Format, d mesh.Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	switch format {
	case FormatOBJ:
		return WriteOBJFile(path, name, d)
	case FormatYAML:
		return NewSnapshot(name, d).SaveTo(path)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}
