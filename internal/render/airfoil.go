package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/chordline-aero/wingloft/internal/geom"
)

// AirfoilChart renders a normalised airfoil profile as a 2-D scatter.
// Axis ranges are padded slightly so points on the chord ends stay
// visible.
func AirfoilChart(w io.Writer, a geom.Airfoil, o ChartOptions) error {
	if err := a.Validate(); err != nil {
		return err
	}
	o = o.withDefaults()

	data := make([]opts.ScatterData, 0, len(a.Points))
	minX, maxX := a.Points[0][0], a.Points[0][0]
	minY, maxY := a.Points[0][1], a.Points[0][1]
	for _, p := range a.Points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
		data = append(data, opts.ScatterData{Value: []interface{}{p[0], p[1]}})
	}

	padX := (maxX - minX) * 0.05
	if padX == 0 {
		padX = 0.05
	}
	padY := (maxY - minY) * 0.05
	if padY == 0 {
		padY = 0.05
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Airfoil Profile", Theme: o.Theme, Width: o.Width, Height: o.Height, AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Airfoil Profile", Subtitle: fmt.Sprintf("airfoil=%s points=%d", a.Name, len(a.Points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: minX - padX, Max: maxX + padX, Name: "X (Chord)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: minY - padY, Max: maxY + padY, Name: "Y (Thickness)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("profile", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return fmt.Errorf("failed to render airfoil chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
