// edgeloop selects edge loops on quad meshes and splits meshes along them.
package main

import (
	"context"
	"flag"
	"fmt"
	gomath "math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/edgeloop/internal/batch"
	"github.com/Faultbox/edgeloop/internal/config"
	"github.com/Faultbox/edgeloop/internal/logger"
	"github.com/Faultbox/edgeloop/internal/pipeline"
	"github.com/Faultbox/edgeloop/pkg/formats"
	"github.com/Faultbox/edgeloop/pkg/math"
	"github.com/Faultbox/edgeloop/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "select", "sel":
		err = cmdRun("select", args, false)
	case "split":
		err = cmdRun("split", args, true)
	case "batch":
		err = cmdBatch(args)
	case "gen":
		err = cmdGen(args)
	case "info":
		err = cmdInfo(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`edgeloop - edge loop selection and mesh splitting

Usage:
  edgeloop <command> [options]

Commands:
  select [options] <mesh>        Select the loop at the extreme vertex and print a report
  split [options] <mesh>         Select a loop and write the two pieces it separates
  batch [options] <mesh|dir>...  Run select (or split with -split) over many meshes
  gen [options] <shape> <output> Write a primitive mesh (torus, box, grid, strip, fan)
  info <mesh>                    Show topology statistics
  config                         Print the effective configuration

Mesh files are Wavefront OBJ (.obj) or YAML snapshots (.yaml, .yml).

Examples:
  edgeloop gen -n 16 -m 8 torus wheel.obj
  edgeloop select -axis y wheel.obj
  edgeloop split -out ./pieces -format yaml cube.obj
  edgeloop batch -split -workers 4 ./meshes`)
}

// setup parses the shared flags, loads configuration and starts logging.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func cmdRun(name string, args []string, doSplit bool) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: edgeloop %s [options] <mesh>", name)
	}
	if doSplit {
		cfg.Split.Enabled = true
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := pipeline.NewRunner(cfg, logger.Named(name))
	report, runErr := runner.Run(ctx, fs.Arg(0))
	if out, err := report.Marshal(); err == nil {
		os.Stdout.Write(out)
	}
	return runErr
}

func cmdBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	doSplit := fs.Bool("split", false, "Split every mesh along its loop")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: edgeloop batch [options] <mesh|dir>...")
	}
	if *doSplit {
		cfg.Split.Enabled = true
	}

	paths, err := collectMeshes(fs.Args())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	if cfg.Batch.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Batch.Timeout)
		defer cancel()
	}

	log := logger.Named("batch")
	log.Info("starting batch", zap.Int("meshes", len(paths)), zap.Int("workers", cfg.Batch.Workers))

	runner := pipeline.NewRunner(cfg, log)
	res := batch.Run(ctx, paths, cfg.Batch.Workers, runner.Run)

	reports := make([]*pipeline.Report, 0, len(res.Results))
	for _, jr := range res.Results {
		if jr.Report != nil {
			reports = append(reports, jr.Report)
		}
	}
	out, err := yaml.Marshal(reports)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)

	log.Info("batch finished",
		zap.Int("total", res.Total),
		zap.Int("completed", res.Completed),
		zap.Int("failed", res.Failed))
	return res.Err()
}

// collectMeshes expands directories into the mesh files they contain.
func collectMeshes(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := formats.DetectFormat(e.Name()); err == nil {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	return paths, nil
}

func cmdGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	n := fs.Int("n", 8, "Segments (torus), subdivisions (box), cells along X (grid), triangles (strip, fan)")
	m := fs.Int("m", 4, "Rings (torus) or cells along Y (grid)")
	major := fs.Float64("major", 2, "Torus major radius")
	minor := fs.Float64("minor", 0.5, "Torus minor radius")
	size := fs.Float64("size", 2, "Box edge length")
	height := fs.Float64("height", 1, "Fan center height")
	offset := fs.String("offset", "", "Translate by x,y,z")
	fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("usage: edgeloop gen [options] <torus|box|grid|strip|fan> <output>")
	}

	d, err := primitive(fs.Arg(0), *n, *m, *major, *minor, *size, *height)
	if err != nil {
		return err
	}
	if *offset != "" {
		v, err := parseVec3(*offset)
		if err != nil {
			return err
		}
		d = d.Translate(v)
	}

	out := fs.Arg(1)
	format, err := formats.DetectFormat(out)
	if err != nil {
		return err
	}
	if err := formats.SaveMesh(out, pipeline.MeshName(out), format, d); err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %d vertices, %d faces\n", out, len(d.Positions), len(d.Faces))
	return nil
}

// primitive recovers the builders' argument panics as errors.
func primitive(shape string, n, m int, major, minor, size, height float64) (d mesh.Data, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	switch shape {
	case "torus":
		return mesh.Torus(n, m, major, minor), nil
	case "box", "cube":
		return mesh.Box(n, size), nil
	case "grid":
		return mesh.Grid(n, m), nil
	case "strip":
		return mesh.TriangleStrip(n), nil
	case "fan":
		return mesh.TriangleFan(n, height), nil
	default:
		return mesh.Data{}, fmt.Errorf("unknown shape %q", shape)
	}
}

func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("offset %q: want x,y,z", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &xyz[i]); err != nil {
			return math.Vec3{}, fmt.Errorf("offset %q: %w", s, err)
		}
	}
	return math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: edgeloop info <mesh>")
	}

	d, err := formats.LoadMesh(fs.Arg(0))
	if err != nil {
		return err
	}
	topo, err := mesh.Build(*d)
	if err != nil {
		return err
	}

	valence := make(map[int]int)
	for v := 0; v < topo.NumVertices(); v++ {
		n, _ := topo.Valence(mesh.VertexID(v))
		valence[n]++
	}
	var loose, boundary, manifold, nonManifold int
	for e := 0; e < topo.NumEdges(); e++ {
		faces, _ := topo.EdgeFaces(mesh.EdgeID(e))
		switch len(faces) {
		case 0:
			loose++
		case 1:
			boundary++
		case 2:
			manifold++
		default:
			nonManifold++
		}
	}
	minLen, maxLen := gomath.Inf(1), 0.0
	for e := 0; e < topo.NumEdges(); e++ {
		l, _ := topo.EdgeLength(mesh.EdgeID(e))
		minLen, maxLen = min(minLen, l), max(maxLen, l)
	}
	if topo.NumEdges() == 0 {
		minLen = 0
	}
	sides := make(map[int]int)
	var area float64
	for f := 0; f < topo.NumFaces(); f++ {
		loops, _ := topo.FaceLoops(mesh.FaceID(f))
		sides[len(loops)]++
		a, _ := topo.FaceArea(mesh.FaceID(f))
		area += a
	}
	b := d.Bounds()

	fmt.Printf("Mesh:     %s\n", fs.Arg(0))
	fmt.Printf("Vertices: %d\n", topo.NumVertices())
	fmt.Printf("Edges:    %d (%d manifold, %d boundary, %d loose, %d non-manifold)\n",
		topo.NumEdges(), manifold, boundary, loose, nonManifold)
	fmt.Printf("Faces:    %d (area %g)\n", topo.NumFaces(), area)
	fmt.Printf("Lengths:  %g - %g\n", minLen, maxLen)
	fmt.Printf("Bounds:   (%g, %g, %g) - (%g, %g, %g)\n", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Println()
	fmt.Println("Vertices by valence:")
	for _, k := range sortedKeys(valence) {
		fmt.Printf("  %-4d %d\n", k, valence[k])
	}
	fmt.Println("Faces by sides:")
	for _, k := range sortedKeys(sides) {
		fmt.Printf("  %-4d %d\n", k, sides[k])
	}
	return nil
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Write the effective config to the user config directory")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	if *save {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	os.Stdout.Write(out)
	return nil
}
