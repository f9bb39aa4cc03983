package geom

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Metrics summarises the planform geometry of a lofted half wing. Area and
// mean aerodynamic chord are integrated over the half span; AspectRatio is
// reported for the mirrored full wing.
type Metrics struct {
	Span          float64 `json:"span"`
	Area          float64 `json:"area"`
	MeanAeroChord float64 `json:"mean_aero_chord"`
	AspectRatio   float64 `json:"aspect_ratio"`
	TaperRatio    float64 `json:"taper_ratio"`
}

// samplesPerPanel is the integration resolution between adjacent stations.
// The chord varies linearly inside a panel, so this is more than enough for
// the chord-squared term in the mean aerodynamic chord.
const samplesPerPanel = 256

// ComputeMetrics integrates the chord distribution over the span with the
// trapezoid rule on a dense per-panel grid. At least two stations are
// required; a planform pinned to a single span position has zero area and
// no meaningful aspect ratio.
func ComputeMetrics(p Planform) (Metrics, error) {
	if err := p.Validate(); err != nil {
		return Metrics{}, err
	}
	if len(p.Stations) < 2 {
		return Metrics{}, fmt.Errorf("planform %q needs at least 2 stations for metrics, got %d", p.Name, len(p.Stations))
	}

	var area, areaSq float64
	for i := 1; i < len(p.Stations); i++ {
		prev, next := p.Stations[i-1], p.Stations[i]
		width := next.SpanPos - prev.SpanPos
		if width == 0 {
			// Coincident stations pin the surface but carry no area.
			continue
		}

		spans := floats.Span(make([]float64, samplesPerPanel), prev.SpanPos, next.SpanPos)
		chords := make([]float64, samplesPerPanel)
		chordsSq := make([]float64, samplesPerPanel)
		for j, z := range spans {
			frac := (z - prev.SpanPos) / width
			c := prev.Chord + frac*(next.Chord-prev.Chord)
			chords[j] = c
			chordsSq[j] = c * c
		}

		area += integrate.Trapezoidal(spans, chords)
		areaSq += integrate.Trapezoidal(spans, chordsSq)
	}

	if area <= 0 {
		return Metrics{}, fmt.Errorf("planform %q has zero area over its %d stations", p.Name, len(p.Stations))
	}

	m := Metrics{
		Span:          p.Span(),
		Area:          area,
		MeanAeroChord: areaSq / area,
		TaperRatio:    p.TipChord() / p.RootChord(),
	}
	// Full-wing aspect ratio: b^2/S with b = 2*halfSpan, S = 2*halfArea.
	m.AspectRatio = 2 * m.Span * m.Span / m.Area
	return m, nil
}
