package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/ungerik/go3d/float64/vec3"
)

// WingMeta labels the rendered surface charts.
type WingMeta struct {
	AirfoilName  string
	PlanformName string
	DegreeU      int
	DegreeV      int
	SamplesU     int
	SamplesV     int
}

// WingSurfaceChart renders the evaluated surface grid as a 3-D surface
// chart, followed by a 3-D scatter of the control net when a control grid
// is supplied. Samples are colored by span position so the gradient runs
// root to tip.
func WingSurfaceChart(w io.Writer, samples [][]vec3.T, controlGrid [][]vec3.T, meta WingMeta, o ChartOptions) error {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return fmt.Errorf("no surface samples to render")
	}
	o = o.withDefaults()

	data := make([]opts.Chart3DData, 0, len(samples)*len(samples[0]))
	minZ, maxZ := samples[0][0][2], samples[0][0][2]
	for _, row := range samples {
		for _, p := range row {
			if p[2] < minZ {
				minZ = p[2]
			}
			if p[2] > maxZ {
				maxZ = p[2]
			}
			data = append(data, opts.Chart3DData{Value: []interface{}{p[0], p[1], p[2]}})
		}
	}
	if maxZ <= minZ {
		maxZ = minZ + 1
	}

	subtitle := fmt.Sprintf("airfoil=%s planform=%s degree=%dx%d samples=%dx%d",
		meta.AirfoilName, meta.PlanformName, meta.DegreeU, meta.DegreeV, meta.SamplesU, meta.SamplesV)

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "NURBS Wing Geometry", Theme: o.Theme, Width: o.Width, Height: o.Height, AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "NURBS Wing Surface", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X (Sweep)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y (Chord)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z (Span)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minZ),
			Max:        float32(maxZ),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridisColors},
		}),
	)
	surface.AddSeries("surface", data)

	page := components.NewPage()
	page.PageTitle = "NURBS Wing Geometry"
	page.SetAssetsHost(echartsAssetsHost)
	page.AddCharts(surface)
	if len(controlGrid) > 0 {
		page.AddCharts(controlNetChart(controlGrid, o))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render wing chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// controlNetChart builds the companion 3-D scatter of the control grid.
func controlNetChart(grid [][]vec3.T, o ChartOptions) *charts.Scatter3D {
	data := make([]opts.Chart3DData, 0, len(grid)*len(grid[0]))
	minZ, maxZ := grid[0][0][2], grid[0][0][2]
	for _, row := range grid {
		for _, p := range row {
			if p[2] < minZ {
				minZ = p[2]
			}
			if p[2] > maxZ {
				maxZ = p[2]
			}
			data = append(data, opts.Chart3DData{Value: []interface{}{p[0], p[1], p[2]}})
		}
	}
	if maxZ <= minZ {
		maxZ = minZ + 1
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: o.Theme, Width: o.Width, Height: o.Height, AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Control Net", Subtitle: fmt.Sprintf("%dx%d control points", len(grid), len(grid[0]))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X (Sweep)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y (Chord)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z (Span)"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minZ),
			Max:        float32(maxZ),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridisColors},
		}),
	)
	scatter.AddSeries("control points", data)
	return scatter
}
