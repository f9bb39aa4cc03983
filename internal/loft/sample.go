package loft

import (
	"fmt"

	"github.com/alexozer/verb"
	"github.com/ungerik/go3d/float64/vec3"
)

// SampleGrid evaluates the surface on a uniform nu x nv grid over its
// parametric domain. Row i holds a chordwise run at fixed u; the corner
// samples land exactly on the domain limits, so a clamped surface is
// sampled through its edge control points.
func SampleGrid(surface *verb.NurbsSurface, nu, nv int) ([][]vec3.T, error) {
	if nu < 2 || nv < 2 {
		return nil, fmt.Errorf("sample grid must be at least 2x2, got %dx%d", nu, nv)
	}

	minU, maxU := surface.DomainU()
	minV, maxV := surface.DomainV()

	points := make([][]vec3.T, nu)
	for i := range points {
		u := minU + (maxU-minU)*float64(i)/float64(nu-1)
		row := make([]vec3.T, nv)
		for j := range row {
			v := minV + (maxV-minV)*float64(j)/float64(nv-1)
			row[j] = surface.Point(verb.UV{u, v})
		}
		points[i] = row
	}
	return points, nil
}

// Tessellate runs verb's adaptive tessellation, producing the triangle
// mesh used for STL and OBJ export.
func Tessellate(surface *verb.NurbsSurface) *verb.Mesh {
	return surface.Tessellate()
}
