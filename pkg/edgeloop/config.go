package edgeloop

import (
	"fmt"
	"strings"

	"github.com/Faultbox/edgeloop/pkg/math"
)

// Direction chooses whether the seed vertex is the maximum or the minimum
// along the configured axis.
type Direction int

// Seed directions.
const (
	Max Direction = iota
	Min
)

// String returns "max" or "min".
func (d Direction) String() string {
	switch d {
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts "max" or "min" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "":
		return Max, nil
	case "min":
		return Min, nil
	default:
		return Max, fmt.Errorf("unknown direction %q", s)
	}
}

// Scoring selects the per-edge score used to rank seed candidates.
type Scoring int

const (
	// ScoreAngle ranks candidates by the angle between the projected
	// endpoint positions: arccos of their normalized dot product.
	ScoreAngle Scoring = iota
	// ScoreLegacyCosine applies cos to the normalized dot product, matching
	// the ranking of earlier editor scripts. It prefers nearly perpendicular
	// endpoint vectors where ScoreAngle prefers opposite ones.
	ScoreLegacyCosine
)

// String returns "angle" or "legacy-cosine".
func (s Scoring) String() string {
	switch s {
	case ScoreAngle:
		return "angle"
	case ScoreLegacyCosine:
		return "legacy-cosine"
	default:
		return fmt.Sprintf("Scoring(%d)", int(s))
	}
}

// ParseScoring converts "angle" or "legacy-cosine" to a Scoring.
func ParseScoring(s string) (Scoring, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "angle", "":
		return ScoreAngle, nil
	case "legacy-cosine", "legacy", "cosine":
		return ScoreLegacyCosine, nil
	default:
		return ScoreAngle, fmt.Errorf("unknown scoring %q", s)
	}
}

// Config controls seed selection and the walk.
type Config struct {
	Axis      math.Axis
	Direction Direction
	Scoring   Scoring
	// Bidirectional walks from the other end of the seed edge when the
	// first walk ends stuck, so open loops are selected on both sides.
	Bidirectional bool
	// QuadStart starts the walk from a seed loop cornered at a 4-valent
	// vertex when one exists. Otherwise the walk starts from the seed
	// edge's first loop in radial order, whatever its corner valence.
	QuadStart bool
}

// DefaultConfig seeds from the highest vertex along Z, scores by angle and
// walks in one direction.
func DefaultConfig() Config {
	return Config{
		Axis:      math.AxisZ,
		Direction: Max,
		Scoring:   ScoreAngle,
	}
}
