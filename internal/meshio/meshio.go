// Package meshio converts tessellated spline surfaces into triangle
// soups and writes them as STL, OBJ and CSV files.
package meshio

import (
	"fmt"

	"github.com/alexozer/verb"
	"github.com/ungerik/go3d/float64/vec3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangles converts a tessellated mesh into a triangle list. Face
// indices are validated against the point array so a malformed mesh
// fails here instead of inside a writer.
func Triangles(mesh *verb.Mesh) ([]r3.Triangle, error) {
	if mesh == nil {
		return nil, fmt.Errorf("mesh is nil")
	}
	tris := make([]r3.Triangle, 0, len(mesh.Faces))
	for fi, face := range mesh.Faces {
		var tri r3.Triangle
		for c, idx := range face {
			if idx < 0 || idx >= len(mesh.Points) {
				return nil, fmt.Errorf("face %d references point %d, mesh has %d points", fi, idx, len(mesh.Points))
			}
			tri[c] = toR3(mesh.Points[idx])
		}
		tris = append(tris, tri)
	}
	return tris, nil
}

func toR3(p vec3.T) r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}
