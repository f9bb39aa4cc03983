package geom

import "fmt"

// Station places one airfoil section along the span. SpanPos is the
// distance from the root along the stacking axis, Chord scales the
// normalised section, SweepDeg shears the section toward the trailing
// edge and TwistDeg pitches it about the quarter-chord point.
type Station struct {
	SpanPos  float64 `json:"span_pos"`
	Chord    float64 `json:"chord"`
	SweepDeg float64 `json:"sweep_deg"`
	TwistDeg float64 `json:"twist_deg,omitempty"`
}

// Planform is an ordered list of stations from root to tip.
type Planform struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Stations    []Station `json:"stations"`
}

// Validate checks station ordering and chord values. Span positions must
// be non-decreasing so the lofted surface does not fold back on itself;
// repeated positions are allowed and pin the surface at that station.
func (p *Planform) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("planform name is required")
	}
	if len(p.Stations) == 0 {
		return fmt.Errorf("planform %q has no stations", p.Name)
	}
	for i, st := range p.Stations {
		if st.Chord <= 0 {
			return fmt.Errorf("planform %q station %d: chord must be positive, got %g", p.Name, i, st.Chord)
		}
		if i > 0 && st.SpanPos < p.Stations[i-1].SpanPos {
			return fmt.Errorf("planform %q station %d: span position %g is behind previous station %g",
				p.Name, i, st.SpanPos, p.Stations[i-1].SpanPos)
		}
	}
	return nil
}

// Span returns the distance between the first and last stations.
func (p *Planform) Span() float64 {
	if len(p.Stations) == 0 {
		return 0
	}
	return p.Stations[len(p.Stations)-1].SpanPos - p.Stations[0].SpanPos
}

// RootChord returns the chord at the first station, or 0 when empty.
func (p *Planform) RootChord() float64 {
	if len(p.Stations) == 0 {
		return 0
	}
	return p.Stations[0].Chord
}

// TipChord returns the chord at the last station, or 0 when empty.
func (p *Planform) TipChord() float64 {
	if len(p.Stations) == 0 {
		return 0
	}
	return p.Stations[len(p.Stations)-1].Chord
}

// DemoPlanform returns the built-in tapered, swept planform used by the
// generate command when no planform is named: a straight inboard panel,
// a swept mid panel held at constant chord, and a tapered tip.
func DemoPlanform() Planform {
	return Planform{
		Name:        "demo",
		Description: "Tapered swept demonstration planform",
		Stations: []Station{
			{SpanPos: 0, Chord: 1.5, SweepDeg: 0},
			{SpanPos: 5, Chord: 1.0, SweepDeg: 5},
			{SpanPos: 7, Chord: 1.0, SweepDeg: 5},
			{SpanPos: 10, Chord: 0.5, SweepDeg: 10},
		},
	}
}
