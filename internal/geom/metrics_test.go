package geom

import (
	"math"
	"strings"
	"testing"
)

func TestComputeMetricsRectangular(t *testing.T) {
	p := Planform{
		Name: "slab",
		Stations: []Station{
			{SpanPos: 0, Chord: 2},
			{SpanPos: 10, Chord: 2},
		},
	}
	m, err := ComputeMetrics(p)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if m.Span != 10 {
		t.Errorf("Span = %v, want 10", m.Span)
	}
	if math.Abs(m.Area-20) > 1e-9 {
		t.Errorf("Area = %v, want 20", m.Area)
	}
	if math.Abs(m.MeanAeroChord-2) > 1e-9 {
		t.Errorf("MeanAeroChord = %v, want 2", m.MeanAeroChord)
	}
	if math.Abs(m.AspectRatio-10) > 1e-9 {
		t.Errorf("AspectRatio = %v, want 10", m.AspectRatio)
	}
	if m.TaperRatio != 1 {
		t.Errorf("TaperRatio = %v, want 1", m.TaperRatio)
	}
}

func TestComputeMetricsLinearTaper(t *testing.T) {
	p := Planform{
		Name: "taper",
		Stations: []Station{
			{SpanPos: 0, Chord: 2},
			{SpanPos: 10, Chord: 1},
		},
	}
	m, err := ComputeMetrics(p)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	if math.Abs(m.Area-15) > 1e-6 {
		t.Errorf("Area = %v, want 15", m.Area)
	}
	// MAC of a linear taper: integral of c^2 over the area, 23.3333/15.
	if math.Abs(m.MeanAeroChord-1.555556) > 1e-4 {
		t.Errorf("MeanAeroChord = %v, want ~1.555556", m.MeanAeroChord)
	}
	if math.Abs(m.TaperRatio-0.5) > 1e-9 {
		t.Errorf("TaperRatio = %v, want 0.5", m.TaperRatio)
	}
}

func TestComputeMetricsDemoPlanform(t *testing.T) {
	m, err := ComputeMetrics(DemoPlanform())
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}

	// Panel areas: 6.25 inboard, 2.0 mid, 2.25 outboard.
	if math.Abs(m.Area-10.5) > 1e-6 {
		t.Errorf("Area = %v, want 10.5", m.Area)
	}
	if math.Abs(m.AspectRatio-200.0/10.5) > 1e-6 {
		t.Errorf("AspectRatio = %v, want %v", m.AspectRatio, 200.0/10.5)
	}
	if math.Abs(m.TaperRatio-1.0/3.0) > 1e-9 {
		t.Errorf("TaperRatio = %v, want 1/3", m.TaperRatio)
	}
}

func TestComputeMetricsSkipsCoincidentStations(t *testing.T) {
	p := Planform{
		Name: "pinned",
		Stations: []Station{
			{SpanPos: 0, Chord: 1},
			{SpanPos: 5, Chord: 1},
			{SpanPos: 5, Chord: 0.8},
			{SpanPos: 10, Chord: 0.8},
		},
	}
	m, err := ComputeMetrics(p)
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if math.Abs(m.Area-9) > 1e-6 {
		t.Errorf("Area = %v, want 9", m.Area)
	}
}

func TestComputeMetricsErrors(t *testing.T) {
	tests := []struct {
		name     string
		planform Planform
		wantSub  string
	}{
		{
			name: "single station",
			planform: Planform{
				Name:     "stub",
				Stations: []Station{{SpanPos: 0, Chord: 1}},
			},
			wantSub: "at least 2 stations",
		},
		{
			name: "all stations coincident",
			planform: Planform{
				Name: "flat",
				Stations: []Station{
					{SpanPos: 0, Chord: 1},
					{SpanPos: 0, Chord: 2},
				},
			},
			wantSub: "zero area",
		},
		{
			name:     "invalid planform",
			planform: Planform{Name: "empty"},
			wantSub:  "no stations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeMetrics(tt.planform)
			if err == nil {
				t.Fatal("ComputeMetrics succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}
