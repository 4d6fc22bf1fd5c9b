// Package edgeloop finds an edge loop on a quad-dominant mesh: it picks a
// seed edge at the extreme vertex along an axis, then walks straight through
// 4-valent vertices until the loop closes or reaches irregular topology.
package edgeloop

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/edgeloop/pkg/math"
	"github.com/Faultbox/edgeloop/pkg/mesh"
)

// quadValence is the vertex valence the walk continues through.
const quadValence = 4

// Selector runs selection passes over one Topology. It holds no pass state,
// so a Selector may be shared between goroutines.
type Selector struct {
	topo *mesh.Topology
	cfg  Config
	log  *zap.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Selector over topo.
func New(topo *mesh.Topology, cfg Config, opts ...Option) *Selector {
	s := &Selector{
		topo: topo,
		cfg:  cfg,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.Scoring == ScoreLegacyCosine {
		s.log.Debug("using legacy cosine seed scoring")
	}
	return s
}

// Config returns the selector configuration.
func (s *Selector) Config() Config {
	return s.cfg
}

// SeedVertex returns the vertex with the extreme coordinate along the
// configured axis. Ties go to the lowest vertex index.
func (s *Selector) SeedVertex() (mesh.VertexID, error) {
	n := s.topo.NumVertices()
	if n == 0 {
		return 0, fmt.Errorf("%w: mesh has no vertices", ErrDegenerateVertex)
	}
	best := mesh.VertexID(0)
	p, _ := s.topo.Position(best)
	bestVal := p.Component(s.cfg.Axis)
	for v := 1; v < n; v++ {
		p, _ := s.topo.Position(mesh.VertexID(v))
		val := p.Component(s.cfg.Axis)
		if (s.cfg.Direction == Max && val > bestVal) || (s.cfg.Direction == Min && val < bestVal) {
			best, bestVal = mesh.VertexID(v), val
		}
	}
	return best, nil
}

// ChooseSeedEdge picks the edge at the seed vertex whose endpoints score
// highest, projected onto the plane orthogonal to the axis. Candidate ties
// go to the lowest edge id.
func (s *Selector) ChooseSeedEdge() (mesh.EdgeID, error) {
	v, err := s.SeedVertex()
	if err != nil {
		return 0, err
	}
	edges, err := s.topo.IncidentEdges(v)
	if err != nil {
		return 0, err
	}
	if len(edges) == 0 {
		return 0, fmt.Errorf("%w: vertex %d", ErrDegenerateVertex, v)
	}

	pv, err := s.topo.Position(v)
	if err != nil {
		return 0, err
	}
	best := edges[0]
	bestScore := gomath.Inf(-1)
	for _, e := range edges {
		u, err := s.topo.OtherVertex(e, v)
		if err != nil {
			return 0, err
		}
		pu, _ := s.topo.Position(u)
		score, err := Score(pv, pu, s.cfg.Axis, s.cfg.Scoring)
		if err != nil {
			return 0, fmt.Errorf("edge %d: %w", e, err)
		}
		if score > bestScore {
			best, bestScore = e, score
		}
	}

	s.log.Debug("seed edge chosen",
		zap.Int("vertex", int(v)),
		zap.Int("edge", int(best)),
		zap.Float64("score", bestScore),
		zap.Int("candidates", len(edges)))
	return best, nil
}

// Score rates the edge a-b by the angle between its endpoint position
// vectors projected onto the plane orthogonal to axis.
func Score(a, b math.Vec3, axis math.Axis, scoring Scoring) (float64, error) {
	pa, pb := a.Project(axis), b.Project(axis)
	na, nb := pa.Length(), pb.Length()
	if na == 0 || nb == 0 {
		return 0, ErrZeroMagnitude
	}
	if scoring == ScoreLegacyCosine {
		return gomath.Cos(pa.Dot(pb) / (na * nb)), nil
	}
	// Atan2 keeps full precision for nearly parallel and nearly opposite
	// vectors, where arccos of the normalized dot product does not.
	return gomath.Atan2(gomath.Abs(pa.Cross(pb)), pa.Dot(pb)), nil
}

// Select chooses a seed edge and walks its loop.
func (s *Selector) Select() (*Selection, error) {
	seed, err := s.ChooseSeedEdge()
	if err != nil {
		return nil, err
	}
	return s.SelectLoop(seed)
}

// SelectLoop walks the edge loop through seed.
//
// The walk starts on the first loop of the seed edge in radial order, or with
// Config.QuadStart on the first one cornered at a 4-valent vertex, and
// advances one quad at a time while the current corner vertex has valence 4.
// It stops as Closed on reaching an already selected edge, or as Stuck at
// any other valence. Each edge is selected at most once, so a pass takes at
// most NumEdges steps.
//
// On error the partial selection is returned alongside it.
func (s *Selector) SelectLoop(seed mesh.EdgeID) (*Selection, error) {
	loops, err := s.topo.EdgeLoops(seed)
	if err != nil {
		return nil, err
	}
	sel := newSelection(seed, s.topo.NumEdges())
	sel.mark(seed)

	if len(loops) == 0 {
		s.log.Debug("seed edge has no faces", zap.Int("edge", int(seed)))
		return sel, nil
	}

	start, err := s.startLoop(loops)
	if err != nil {
		return sel, err
	}
	status, err := s.walk(sel, start)
	if err != nil {
		return sel, err
	}
	sel.Status = status

	if status == Stuck && s.cfg.Bidirectional {
		if back, ok := s.oppositeLoop(loops, start); ok {
			if _, err := s.walk(sel, back); err != nil {
				return sel, err
			}
		}
	}

	s.log.Debug("edge loop walked",
		zap.Int("seed", int(seed)),
		zap.Stringer("status", sel.Status),
		zap.Int("edges", sel.Len()))
	return sel, nil
}

func (s *Selector) startLoop(loops []mesh.LoopID) (mesh.LoopID, error) {
	if !s.cfg.QuadStart {
		return loops[0], nil
	}
	for _, l := range loops {
		v, err := s.topo.LoopVertex(l)
		if err != nil {
			return mesh.NoLoop, err
		}
		val, err := s.topo.Valence(v)
		if err != nil {
			return mesh.NoLoop, err
		}
		if val == quadValence {
			return l, nil
		}
	}
	return loops[0], nil
}

// oppositeLoop finds a loop on the seed edge cornered at the endpoint the
// first walk did not leave from.
func (s *Selector) oppositeLoop(loops []mesh.LoopID, start mesh.LoopID) (mesh.LoopID, bool) {
	from, err := s.topo.LoopVertex(start)
	if err != nil {
		return mesh.NoLoop, false
	}
	for _, l := range loops {
		if v, err := s.topo.LoopVertex(l); err == nil && v != from {
			return l, true
		}
	}
	return mesh.NoLoop, false
}

func (s *Selector) walk(sel *Selection, cur mesh.LoopID) (Status, error) {
	for {
		v, err := s.topo.LoopVertex(cur)
		if err != nil {
			return Stuck, err
		}
		val, err := s.topo.Valence(v)
		if err != nil {
			return Stuck, err
		}
		if val != quadValence {
			return Stuck, nil
		}
		if cur, err = s.topo.NextAroundQuad(cur); err != nil {
			return Stuck, err
		}
		e, err := s.topo.EdgeOf(cur)
		if err != nil {
			return Stuck, err
		}
		if sel.Contains(e) {
			return Closed, nil
		}
		sel.mark(e)
	}
}
