package meshio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// stlRecord is the 50-byte binary STL triangle layout: unit normal,
// three vertices, then the attribute byte count.
type stlRecord struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	AttrCount uint16
}

// WriteSTL writes the triangles as a binary STL solid. The name is
// truncated into the 80-byte header. Normals follow the right-hand rule
// over the vertex order; degenerate triangles get a zero normal, which
// STL readers recompute anyway.
func WriteSTL(w io.Writer, name string, tris []r3.Triangle) error {
	if len(tris) == 0 {
		return fmt.Errorf("no triangles to write")
	}

	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], name)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write STL header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(tris))); err != nil {
		return fmt.Errorf("failed to write STL triangle count: %w", err)
	}

	for i, tri := range tris {
		var rec stlRecord
		n := tri.Normal()
		if length := r3.Norm(n); length > 0 {
			n = r3.Scale(1/length, n)
			rec.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		}
		for c, v := range tri {
			rec.Vertices[c] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
		}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to write STL triangle %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush STL output: %w", err)
	}
	return nil
}
