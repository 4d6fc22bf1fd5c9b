// Package pipeline runs one mesh file through selection and, optionally,
// separation into two pieces along the selected loop.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/edgeloop/internal/config"
	"github.com/Faultbox/edgeloop/pkg/edgeloop"
	"github.com/Faultbox/edgeloop/pkg/formats"
	"github.com/Faultbox/edgeloop/pkg/mesh"
	"github.com/Faultbox/edgeloop/pkg/split"
)

// Report describes what one run did to one mesh file.
type Report struct {
	Mesh       string        `yaml:"mesh"`
	Vertices   int           `yaml:"vertices"`
	Edges      int           `yaml:"edges"`
	Faces      int           `yaml:"faces"`
	SeedVertex int           `yaml:"seed_vertex"`
	SeedEdge   int           `yaml:"seed_edge"`
	Status     string        `yaml:"status"`
	Loop       []int         `yaml:"loop,flow"`
	Regions    []int         `yaml:"regions,omitempty,flow"`
	Outputs    []string      `yaml:"outputs,omitempty"`
	Note       string        `yaml:"note,omitempty"`
	Duration   time.Duration `yaml:"duration"`
}

// Marshal encodes the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Runner processes mesh files with a fixed configuration. A Runner is safe
// for concurrent use.
type Runner struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Config: cfg, Logger: log}
}

// Run loads path, selects an edge loop and, when splitting is enabled,
// writes the two pieces. A report is returned even when err is non-nil so
// callers can show how far the run got.
func (r *Runner) Run(ctx context.Context, path string) (*Report, error) {
	start := time.Now()
	name := MeshName(path)
	log := r.Logger.With(zap.String("mesh", name))
	report := &Report{Mesh: path, SeedVertex: -1, SeedEdge: -1}
	defer func() { report.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	data, err := formats.LoadMesh(path)
	if err != nil {
		return report, fmt.Errorf("loading %s: %w", path, err)
	}
	topo, err := mesh.Build(*data)
	if err != nil {
		return report, fmt.Errorf("building topology for %s: %w", path, err)
	}
	report.Vertices = topo.NumVertices()
	report.Edges = topo.NumEdges()
	report.Faces = topo.NumFaces()
	log.Debug("topology built",
		zap.Int("vertices", report.Vertices),
		zap.Int("edges", report.Edges),
		zap.Int("faces", report.Faces))

	selCfg, err := r.Config.Selection.EdgeLoop()
	if err != nil {
		return report, err
	}
	selector := edgeloop.New(topo, selCfg, edgeloop.WithLogger(log))

	v, err := selector.SeedVertex()
	if err != nil {
		return report, err
	}
	report.SeedVertex = int(v)

	sel, err := selector.Select()
	if sel != nil {
		report.SeedEdge = int(sel.Seed)
		report.Status = sel.Status.String()
		report.Loop = make([]int, len(sel.Edges))
		for i, e := range sel.Edges {
			report.Loop[i] = int(e)
		}
	}
	if err != nil {
		return report, err
	}
	log.Info("edge loop selected",
		zap.Int("seed", report.SeedEdge),
		zap.String("status", report.Status),
		zap.Int("edges", len(report.Loop)))

	if !r.Config.Split.Enabled {
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if sel.Status != edgeloop.Closed {
		report.Note = "loop is open; split skipped"
		log.Warn("loop did not close, not splitting")
		return report, nil
	}

	part, err := split.Regions(topo, sel)
	if err != nil {
		return report, err
	}
	for _, region := range part.Regions {
		report.Regions = append(report.Regions, len(region))
	}
	if !part.Bisects() {
		report.Note = fmt.Sprintf("loop leaves %d regions; split skipped", len(part.Regions))
		log.Warn("loop does not bisect the mesh", zap.Int("regions", len(part.Regions)))
		return report, nil
	}

	inner, outer, err := split.Separate(topo, part)
	if err != nil {
		return report, err
	}
	outputs, err := r.write(name, inner, outer)
	report.Outputs = outputs
	if err != nil {
		return report, err
	}
	log.Info("mesh split", zap.Strings("outputs", outputs))
	return report, nil
}

func (r *Runner) write(name string, inner, outer mesh.Data) ([]string, error) {
	sc := r.Config.Split
	format, err := formats.ParseFormat(sc.Format)
	if err != nil {
		return nil, err
	}
	pieces := []struct {
		suffix string
		data   mesh.Data
	}{
		{sc.InnerSuffix, inner},
		{sc.OuterSuffix, outer},
	}
	var outputs []string
	for _, p := range pieces {
		out := filepath.Join(sc.OutputDir, name+p.suffix+"."+string(format))
		if err := formats.SaveMesh(out, name+p.suffix, format, p.data); err != nil {
			return outputs, fmt.Errorf("writing %s: %w", out, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// MeshName returns the file name of path without directory or extension.
func MeshName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
