// Package render draws wing geometry as go-echarts HTML documents and
// gonum/plot PNG files. Chart functions buffer the rendered document and
// only write to the destination once rendering has succeeded, so HTTP
// handlers never emit partial pages.
package render

// echartsAssetsHost serves the echarts javascript bundles referenced by
// rendered pages.
const echartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// viridisColors is the visual-map ramp used by the 3-D charts.
var viridisColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// ChartOptions control the HTML chart shell.
type ChartOptions struct {
	Theme  string
	Width  string
	Height string
}

// DefaultChartOptions returns the dark 900x900 shell used by the served
// charts.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Theme: "dark", Width: "900px", Height: "900px"}
}

// withDefaults fills unset fields from DefaultChartOptions.
func (o ChartOptions) withDefaults() ChartOptions {
	def := DefaultChartOptions()
	if o.Theme == "" {
		o.Theme = def.Theme
	}
	if o.Width == "" {
		o.Width = def.Width
	}
	if o.Height == "" {
		o.Height = def.Height
	}
	return o
}
