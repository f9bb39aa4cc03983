package geom

import (
	"strings"
	"testing"
)

func TestPlanformValidate(t *testing.T) {
	tests := []struct {
		name     string
		planform Planform
		wantErr  string
	}{
		{
			name:     "valid demo",
			planform: DemoPlanform(),
		},
		{
			name: "single station",
			planform: Planform{
				Name:     "stub",
				Stations: []Station{{SpanPos: 0, Chord: 1}},
			},
		},
		{
			name: "repeated span position",
			planform: Planform{
				Name: "kinked",
				Stations: []Station{
					{SpanPos: 0, Chord: 1},
					{SpanPos: 5, Chord: 1},
					{SpanPos: 5, Chord: 0.8},
				},
			},
		},
		{
			name:     "missing name",
			planform: Planform{Stations: []Station{{SpanPos: 0, Chord: 1}}},
			wantErr:  "name is required",
		},
		{
			name:     "no stations",
			planform: Planform{Name: "empty"},
			wantErr:  "no stations",
		},
		{
			name: "zero chord",
			planform: Planform{
				Name:     "bad",
				Stations: []Station{{SpanPos: 0, Chord: 0}},
			},
			wantErr: "chord must be positive",
		},
		{
			name: "span goes backwards",
			planform: Planform{
				Name: "folded",
				Stations: []Station{
					{SpanPos: 0, Chord: 1},
					{SpanPos: 5, Chord: 1},
					{SpanPos: 3, Chord: 0.5},
				},
			},
			wantErr: "station 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.planform.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestPlanformAccessors(t *testing.T) {
	p := DemoPlanform()
	if got := p.Span(); got != 10 {
		t.Errorf("Span = %v, want 10", got)
	}
	if got := p.RootChord(); got != 1.5 {
		t.Errorf("RootChord = %v, want 1.5", got)
	}
	if got := p.TipChord(); got != 0.5 {
		t.Errorf("TipChord = %v, want 0.5", got)
	}

	var empty Planform
	if got := empty.Span(); got != 0 {
		t.Errorf("empty Span = %v, want 0", got)
	}
	if got := empty.RootChord(); got != 0 {
		t.Errorf("empty RootChord = %v, want 0", got)
	}
	if got := empty.TipChord(); got != 0 {
		t.Errorf("empty TipChord = %v, want 0", got)
	}
}

func TestDemoPlanformStations(t *testing.T) {
	p := DemoPlanform()
	if err := p.Validate(); err != nil {
		t.Fatalf("demo planform fails validation: %v", err)
	}
	if len(p.Stations) != 4 {
		t.Fatalf("station count = %d, want 4", len(p.Stations))
	}

	// The mid panel holds chord and sweep constant between 5 and 7 units
	// of span, which pins the surface through the kink.
	if p.Stations[1].Chord != p.Stations[2].Chord {
		t.Error("mid panel stations should share a chord")
	}
	if p.Stations[1].SweepDeg != p.Stations[2].SweepDeg {
		t.Error("mid panel stations should share a sweep angle")
	}
}
