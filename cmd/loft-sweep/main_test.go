package main

import (
	"math"
	"testing"

	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/loft"
)

func TestParseCSVFloatSlice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{"simple list", "0,10,20", []float64{0, 10, 20}, false},
		{"spaces trimmed", " 1.5 , 2.5 ", []float64{1.5, 2.5}, false},
		{"single value", "0.5", []float64{0.5}, false},
		{"empty string", "", nil, false},
		{"non-numeric", "a,b", nil, true},
		{"empty element", "1,,2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCSVFloatSlice(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCSVFloatSlice(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseCSVFloatSlice(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseCSVFloatSlice(%q)[%d] = %g, want %g", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerateRange(t *testing.T) {
	tests := []struct {
		name             string
		start, end, step float64
		want             []float64
	}{
		{"sweep degrees", 0, 30, 10, []float64{0, 10, 20, 30}},
		{"taper quarters", 0.25, 1.0, 0.25, []float64{0.25, 0.5, 0.75, 1.0}},
		{"zero step defaults to one", 0, 3, 0, []float64{0, 1, 2, 3}},
		{"single point", 5, 5, 1, []float64{5}},
		{"start past end", 10, 5, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateRange(tt.start, tt.end, tt.step)
			if len(got) != len(tt.want) {
				t.Fatalf("generateRange(%g, %g, %g) = %v, want %v", tt.start, tt.end, tt.step, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("generateRange(%g, %g, %g)[%d] = %g, want %g",
						tt.start, tt.end, tt.step, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseParamList(t *testing.T) {
	got := parseParamList("5,15", 0, 30, 10)
	if len(got) != 2 || got[0] != 5 || got[1] != 15 {
		t.Errorf("explicit list ignored: got %v, want [5 15]", got)
	}

	got = parseParamList("", 0, 20, 10)
	if len(got) != 3 || got[0] != 0 || got[1] != 10 || got[2] != 20 {
		t.Errorf("range fallback: got %v, want [0 10 20]", got)
	}
}

func TestMeanStddev(t *testing.T) {
	tests := []struct {
		name       string
		input      []float64
		wantMean   float64
		wantStddev float64
	}{
		{"empty", nil, 0, 0},
		{"single value", []float64{5}, 5, 0},
		{"three values", []float64{1, 2, 3}, 2, 1},
		{"two values", []float64{2, 4}, 3, math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, stddev := meanStddev(tt.input)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %g, want %g", mean, tt.wantMean)
			}
			if math.Abs(stddev-tt.wantStddev) > 1e-9 {
				t.Errorf("stddev = %g, want %g", stddev, tt.wantStddev)
			}
		})
	}
}

func TestBuildSweepPlanform(t *testing.T) {
	p := buildSweepPlanform(10, 1.5, 20, 0.5)

	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	// Four stations support the default cubic spanwise direction.
	if len(p.Stations) != 4 {
		t.Fatalf("station count = %d, want 4", len(p.Stations))
	}

	root, tip := p.Stations[0], p.Stations[len(p.Stations)-1]
	if root.SpanPos != 0 || root.Chord != 1.5 || root.SweepDeg != 20 {
		t.Errorf("root station = %+v, want span 0 chord 1.5 sweep 20", root)
	}
	if tip.SpanPos != 10 || tip.Chord != 0.75 || tip.SweepDeg != 20 {
		t.Errorf("tip station = %+v, want span 10 chord 0.75 sweep 20", tip)
	}

	// The interior stations stay on the linear chord schedule.
	for i, st := range p.Stations {
		frac := float64(i) / float64(len(p.Stations)-1)
		wantSpan := 10 * frac
		wantChord := 1.5 + frac*(0.75-1.5)
		if math.Abs(st.SpanPos-wantSpan) > 1e-9 || math.Abs(st.Chord-wantChord) > 1e-9 {
			t.Errorf("station %d = %+v, want span %g chord %g", i, st, wantSpan, wantChord)
		}
	}
}

func TestSweepOnce(t *testing.T) {
	airfoil, err := geom.LookupBuiltin("demo")
	if err != nil {
		t.Fatalf("LookupBuiltin: %v", err)
	}

	taper := 1.0 / 3.0
	planform := buildSweepPlanform(10, 1.5, 20, taper)
	opts := loft.Options{MaxDegree: 3, SamplesU: 10, SamplesV: 10}

	result, err := sweepOnce(airfoil, planform, opts)
	if err != nil {
		t.Fatalf("sweepOnce: %v", err)
	}

	if result.DegreeU != 3 {
		t.Errorf("DegreeU = %d, want 3", result.DegreeU)
	}
	if result.DegreeV != 3 {
		t.Errorf("DegreeV = %d, want 3", result.DegreeV)
	}

	m := result.Metrics
	if m.Span != 10 {
		t.Errorf("Span = %g, want 10", m.Span)
	}
	// Linear taper from 1.5 to 0.5 over 10 units: area (1.5+0.5)/2*10.
	if math.Abs(m.Area-10) > 1e-3 {
		t.Errorf("Area = %g, want 10", m.Area)
	}
	if math.Abs(m.AspectRatio-20) > 1e-2 {
		t.Errorf("AspectRatio = %g, want 20", m.AspectRatio)
	}
	if math.Abs(m.TaperRatio-taper) > 1e-9 {
		t.Errorf("TaperRatio = %g, want %g", m.TaperRatio, taper)
	}

	// The tip trailing edge sits at x = tipChord + span*tan(sweep); the
	// clamped surface passes through that corner control point exactly.
	wantTipX := 0.5 + 10*math.Tan(20*math.Pi/180)
	if math.Abs(result.TipX-wantTipX) > 1e-9 {
		t.Errorf("TipX = %g, want %g", result.TipX, wantTipX)
	}
}
