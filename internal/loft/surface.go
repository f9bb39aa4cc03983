package loft

import (
	"fmt"

	"github.com/alexozer/verb"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/chordline-aero/wingloft/internal/monitoring"
)

// Default sampling and degree used when no configuration overrides them.
const (
	DefaultMaxDegree = 3
	DefaultSamples   = 50
)

// Options control surface construction and sampling.
type Options struct {
	// MaxDegree sets the spline degree in both directions. The control
	// grid must carry at least MaxDegree+1 points per direction.
	MaxDegree int

	// SamplesU and SamplesV set the evaluation grid used for charts and
	// exports.
	SamplesU int
	SamplesV int
}

// DefaultOptions returns a cubic surface sampled on a 50x50 grid.
func DefaultOptions() Options {
	return Options{
		MaxDegree: DefaultMaxDegree,
		SamplesU:  DefaultSamples,
		SamplesV:  DefaultSamples,
	}
}

// Validate checks options against the ranges the spline library accepts.
func (o *Options) Validate() error {
	if o.MaxDegree < 1 || o.MaxDegree > 3 {
		return fmt.Errorf("max degree must be between 1 and 3, got %d", o.MaxDegree)
	}
	if o.SamplesU < 2 {
		return fmt.Errorf("samples_u must be at least 2, got %d", o.SamplesU)
	}
	if o.SamplesV < 2 {
		return fmt.Errorf("samples_v must be at least 2, got %d", o.SamplesV)
	}
	return nil
}

// BuildSurface transposes sections into a control grid and constructs the
// NURBS surface through it. See BuildSurfaceFromGrid for the guard and
// degree rules.
func BuildSurface(sections [][]vec3.T, maxDegree int) (*verb.NurbsSurface, error) {
	grid, err := BuildControlGrid(sections)
	if err != nil {
		return nil, err
	}
	return BuildSurfaceFromGrid(grid, maxDegree)
}

// BuildSurfaceFromGrid hands a control grid to the verb constructor with
// uniform weights and clamped-uniform knot vectors. Both directions loft
// at exactly maxDegree, so the grid needs at least maxDegree+1 points in
// each direction; a smaller grid is rejected rather than silently built
// at a lower degree. Callers with a short station list get a surface by
// asking for the lower degree explicitly.
func BuildSurfaceFromGrid(grid [][]vec3.T, maxDegree int) (*verb.NurbsSurface, error) {
	if maxDegree < 1 || maxDegree > 3 {
		return nil, fmt.Errorf("max degree must be between 1 and 3, got %d", maxDegree)
	}
	numU := len(grid)
	if numU == 0 {
		return nil, fmt.Errorf("control grid is empty")
	}
	numV := len(grid[0])
	for i, row := range grid {
		if len(row) != numV {
			return nil, fmt.Errorf("control grid row %d has %d points, want %d", i, len(row), numV)
		}
	}
	minPoints := maxDegree + 1
	if numU < minPoints {
		return nil, fmt.Errorf("not enough control points: degree %d needs at least %d chordwise points, got %d", maxDegree, minPoints, numU)
	}
	if numV < minPoints {
		return nil, fmt.Errorf("not enough control points: degree %d needs at least %d spanwise stations, got %d", maxDegree, minPoints, numV)
	}

	if maxDegree < DefaultMaxDegree {
		monitoring.Logf("[Loft] Building %dx%d control grid at degree %d (below default cubic)",
			numU, numV, maxDegree)
	}

	knotsU, err := ClampedUniformKnots(numU, maxDegree)
	if err != nil {
		return nil, err
	}
	knotsV, err := ClampedUniformKnots(numV, maxDegree)
	if err != nil {
		return nil, err
	}

	surface, err := verb.NewNurbsSurface(maxDegree, maxDegree, grid, uniformWeights(numU, numV), knotsU, knotsV)
	if err != nil {
		return nil, fmt.Errorf("failed to construct spline surface: %w", err)
	}
	return surface, nil
}
