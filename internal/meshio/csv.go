package meshio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ungerik/go3d/float64/vec3"
)

// WriteGridCSV writes an evaluated surface grid as CSV rows of
// i,j,x,y,z where i is the chordwise sample index and j the spanwise
// one. The row order walks each chordwise run in turn, so replotting
// tools can reshape the grid from the indices alone.
func WriteGridCSV(w io.Writer, points [][]vec3.T) error {
	if len(points) == 0 {
		return fmt.Errorf("no points to write")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"i", "j", "x", "y", "z"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, row := range points {
		for j, p := range row {
			rec := []string{
				fmt.Sprintf("%d", i),
				fmt.Sprintf("%d", j),
				fmt.Sprintf("%.6f", p[0]),
				fmt.Sprintf("%.6f", p[1]),
				fmt.Sprintf("%.6f", p[2]),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV row %d,%d: %w", i, j, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
