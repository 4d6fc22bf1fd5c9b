package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/edgeloop/pkg/math"
	"github.com/Faultbox/edgeloop/pkg/mesh"
)

// OBJ format errors.
var (
	ErrMalformedOBJ = errors.New("malformed OBJ statement")
	ErrOBJIndex     = errors.New("OBJ vertex reference out of range")
)

// ParseOBJ parses Wavefront OBJ geometry from a byte slice.
//
// Only vertex positions (v), faces (f) and polylines (l) are read. Face
// corners may use the v, v/vt, v//vn or v/vt/vn forms; negative references
// count back from the latest vertex. Each polyline segment becomes an entry
// in Data.Edges, so loose edges keep the lowest edge ids.
func ParseOBJ(data []byte) (*mesh.Data, error) {
	d := &mesh.Data{}
	seen := make(map[[2]int]struct{})

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, errors.Wrapf(ErrMalformedOBJ, "line %d: vertex needs 3 coordinates", lineNo)
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, errors.Wrapf(ErrMalformedOBJ, "line %d: %v", lineNo, err)
				}
				xyz[i] = f
			}
			d.Positions = append(d.Positions, math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})

		case "f":
			if len(fields) < 4 {
				return nil, errors.Wrapf(ErrMalformedOBJ, "line %d: face needs 3 corners", lineNo)
			}
			face := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				v, err := resolveOBJRef(ref, len(d.Positions))
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				face = append(face, v)
			}
			d.Faces = append(d.Faces, face)

		case "l":
			if len(fields) < 3 {
				return nil, errors.Wrapf(ErrMalformedOBJ, "line %d: polyline needs 2 vertices", lineNo)
			}
			prev := -1
			for _, ref := range fields[1:] {
				v, err := resolveOBJRef(ref, len(d.Positions))
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				if prev >= 0 && prev != v {
					key := [2]int{min(prev, v), max(prev, v)}
					if _, dup := seen[key]; !dup {
						seen[key] = struct{}{}
						d.Edges = append(d.Edges, [2]int{prev, v})
					}
				}
				prev = v
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning OBJ")
	}
	return d, nil
}

// resolveOBJRef turns a 1-based (or negative, relative) corner reference
// into a 0-based vertex index.
func resolveOBJRef(ref string, count int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedOBJ, "vertex reference %q", ref)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, errors.Wrapf(ErrOBJIndex, "reference %d with %d vertices", n, count)
	}
	return idx, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*mesh.Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading OBJ file")
	}
	return ParseOBJ(data)
}

// WriteOBJ writes d as a single named OBJ object. Listed edges that no face
// uses are written as polylines.
func WriteOBJ(w io.Writer, name string, d mesh.Data) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, p := range d.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}

	used := make(map[[2]int]struct{})
	for _, f := range d.Faces {
		bw.WriteString("f")
		for i, v := range f {
			fmt.Fprintf(bw, " %d", v+1)
			next := f[(i+1)%len(f)]
			used[[2]int{min(v, next), max(v, next)}] = struct{}{}
		}
		bw.WriteString("\n")
	}
	for _, e := range d.Edges {
		if _, ok := used[[2]int{min(e[0], e[1]), max(e[0], e[1])}]; ok {
			continue
		}
		fmt.Fprintf(bw, "l %d %d\n", e[0]+1, e[1]+1)
	}
	return errors.Wrap(bw.Flush(), "writing OBJ")
}

// WriteOBJFile writes d to path.
func WriteOBJFile(path, name string, d mesh.Data) error {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, name, d); err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0644), "writing OBJ file")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
