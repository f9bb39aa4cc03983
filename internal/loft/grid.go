// Package loft arranges transformed airfoil sections into a spline
// control grid and hands it to the verb NURBS library for surface
// construction and evaluation. Basis functions, knot validation and
// surface math all live in verb; this package only shapes its inputs.
package loft

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// BuildControlGrid transposes per-station section point lists into a
// control grid: grid[i][j] holds point i of station j, so the u direction
// runs chordwise along the section and the v direction runs spanwise
// across stations. Every section must carry the same number of points.
func BuildControlGrid(sections [][]vec3.T) ([][]vec3.T, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections to loft")
	}
	pointCount := len(sections[0])
	if pointCount == 0 {
		return nil, fmt.Errorf("section 0 has no points")
	}
	for i, s := range sections {
		if len(s) != pointCount {
			return nil, fmt.Errorf("section %d has %d points, want %d to match section 0", i, len(s), pointCount)
		}
	}

	grid := make([][]vec3.T, pointCount)
	for i := range grid {
		row := make([]vec3.T, len(sections))
		for j := range sections {
			row[j] = sections[j][i]
		}
		grid[i] = row
	}
	return grid, nil
}
