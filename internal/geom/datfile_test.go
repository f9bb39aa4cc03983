package geom

import (
	"strings"
	"testing"
)

func TestParseDatFile(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantName   string
		wantPoints int
	}{
		{
			name: "name line and coordinates",
			input: `AG25 (smoothed)
1.000000 0.000000
0.500000 0.060000
0.000000 0.000000
0.500000 -0.020000
1.000000 0.000000
`,
			wantName:   "AG25 (smoothed)",
			wantPoints: 5,
		},
		{
			name: "no name line",
			input: `1.0 0.0
0.5 0.05
0.0 0.0
`,
			wantName:   "fallback",
			wantPoints: 3,
		},
		{
			name: "blank lines and padding",
			input: `  flat plate

1.0   0.0

0.0   0.0
`,
			wantName:   "flat plate",
			wantPoints: 2,
		},
		{
			name: "tab separated",
			input: "1.0\t0.0\n0.0\t0.0\n",
			wantName:   "fallback",
			wantPoints: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseDatFile(strings.NewReader(tt.input), "fallback")
			if err != nil {
				t.Fatalf("ParseDatFile: %v", err)
			}
			if a.Name != tt.wantName {
				t.Errorf("name = %q, want %q", a.Name, tt.wantName)
			}
			if len(a.Points) != tt.wantPoints {
				t.Errorf("point count = %d, want %d", len(a.Points), tt.wantPoints)
			}
		})
	}
}

func TestParseDatFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantSub string
	}{
		{
			name:    "lednicer point counts",
			input:   "E169\n61. 61.\n1.0 0.0\n0.0 0.0\n",
			wantSub: "Lednicer",
		},
		{
			name:    "garbage after coordinates",
			input:   "1.0 0.0\n0.5 0.05\nnot a point\n",
			wantSub: "line 3",
		},
		{
			name:    "second header line",
			input:   "AG25\nsmoothed variant\n1.0 0.0\n0.0 0.0\n",
			wantSub: "line 2",
		},
		{
			name:    "missing y coordinate",
			input:   "1.0 0.0\n0.5\n",
			wantSub: "line 2",
		},
		{
			name:    "empty input",
			input:   "",
			wantSub: "at least 2 points",
		},
		{
			name:    "only a name",
			input:   "lonely airfoil\n",
			wantSub: "at least 2 points",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDatFile(strings.NewReader(tt.input), "fallback")
			if err == nil {
				t.Fatal("ParseDatFile succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseDatFileKeepsOrder(t *testing.T) {
	input := "1.0 0.0\n0.5 0.06\n0.0 0.0\n0.5 -0.02\n1.0 0.0\n"
	a, err := ParseDatFile(strings.NewReader(input), "wedge")
	if err != nil {
		t.Fatalf("ParseDatFile: %v", err)
	}

	wantX := []float64{1.0, 0.5, 0.0, 0.5, 1.0}
	for i, p := range a.Points {
		if p[0] != wantX[i] {
			t.Errorf("point %d x = %v, want %v", i, p[0], wantX[i])
		}
		if p[2] != 0 {
			t.Errorf("point %d z = %v, want 0", i, p[2])
		}
	}
}
