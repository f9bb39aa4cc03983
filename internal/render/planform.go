package render

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/units"
)

// PlanformChart renders the planform outline: leading and trailing edge
// position against span. The edges come from the same scale and shear the
// section transform applies, so the outline matches the lofted surface.
func PlanformChart(w io.Writer, p geom.Planform, o ChartOptions) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o = o.withDefaults()

	leading := make([]opts.LineData, 0, len(p.Stations))
	trailing := make([]opts.LineData, 0, len(p.Stations))
	for _, st := range p.Stations {
		sweepDist := st.SpanPos * math.Tan(units.Radians(st.SweepDeg))
		leading = append(leading, opts.LineData{Value: []interface{}{st.SpanPos, sweepDist}})
		trailing = append(trailing, opts.LineData{Value: []interface{}{st.SpanPos, sweepDist + st.Chord}})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Planform Outline", Theme: o.Theme, Width: o.Width, Height: o.Height, AssetsHost: echartsAssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Planform Outline", Subtitle: fmt.Sprintf("planform=%s stations=%d span=%g", p.Name, len(p.Stations), p.Span())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Z (Span)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "X (Sweep)", NameLocation: "middle", NameGap: 30}),
	)

	line.AddSeries("leading edge", leading)
	line.AddSeries("trailing edge", trailing)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return fmt.Errorf("failed to render planform chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
