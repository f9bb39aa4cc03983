package meshio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/alexozer/verb"
)

// WriteOBJ writes a tessellated mesh as Wavefront OBJ text. Vertex
// normals are emitted when the mesh carries one per point; face indices
// are 1-based per the format.
func WriteOBJ(w io.Writer, name string, mesh *verb.Mesh) error {
	if mesh == nil {
		return fmt.Errorf("mesh is nil")
	}
	if len(mesh.Faces) == 0 {
		return fmt.Errorf("mesh has no faces")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "o %s\n", name)

	for _, p := range mesh.Points {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p[0], p[1], p[2])
	}

	withNormals := len(mesh.Normals) == len(mesh.Points)
	if withNormals {
		for _, n := range mesh.Normals {
			fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n[0], n[1], n[2])
		}
	}

	for fi, face := range mesh.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(mesh.Points) {
				return fmt.Errorf("face %d references point %d, mesh has %d points", fi, idx, len(mesh.Points))
			}
		}
		if withNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n",
				face[0]+1, face[0]+1, face[1]+1, face[1]+1, face[2]+1, face[2]+1)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", face[0]+1, face[1]+1, face[2]+1)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush OBJ output: %w", err)
	}
	return nil
}
