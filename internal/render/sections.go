package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ungerik/go3d/float64/vec3"
)

// SectionsPlot writes a PNG overlaying the transformed station sections
// in the x-y plane, one colored line per station. Labels are optional;
// stations without one are labelled by index.
func SectionsPlot(path string, sections [][]vec3.T, labels []string) error {
	if len(sections) == 0 {
		return fmt.Errorf("no sections to plot")
	}

	p := plot.New()
	p.Title.Text = "Transformed Sections"
	p.X.Label.Text = "X (Sweep)"
	p.Y.Label.Text = "Y (Chord)"

	colors := sectionColors(len(sections))
	for i, section := range sections {
		pts := make(plotter.XYs, len(section))
		for j, pt := range section {
			pts[j] = plotter.XY{X: pt[0], Y: pt[1]}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build line for station %d: %w", i, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)

		label := fmt.Sprintf("station %d", i)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		p.Legend.Add(label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save sections plot: %w", err)
	}
	return nil
}
