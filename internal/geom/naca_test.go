package geom

import (
	"math"
	"testing"
)

func TestNACA4PointCountAndOrder(t *testing.T) {
	a, err := NACA4("0012", 40)
	if err != nil {
		t.Fatalf("NACA4(0012): %v", err)
	}

	// Selig order shares the leading edge point between surfaces.
	if got, want := len(a.Points), 2*40-1; got != want {
		t.Errorf("point count = %d, want %d", got, want)
	}
	if a.Name != "naca0012" {
		t.Errorf("name = %q, want naca0012", a.Name)
	}

	first := a.Points[0]
	mid := a.Points[39]
	last := a.Points[len(a.Points)-1]
	if math.Abs(first[0]-1.0) > 1e-9 {
		t.Errorf("first point x = %v, want trailing edge at 1.0", first[0])
	}
	if math.Abs(mid[0]) > 1e-9 {
		t.Errorf("middle point x = %v, want leading edge at 0", mid[0])
	}
	if math.Abs(last[0]-1.0) > 1e-9 {
		t.Errorf("last point x = %v, want trailing edge at 1.0", last[0])
	}
}

func TestNACA4SymmetricSection(t *testing.T) {
	a, err := NACA4("0012", 50)
	if err != nil {
		t.Fatalf("NACA4(0012): %v", err)
	}

	n := 50
	// Upper surface runs TE..LE over indices 0..n-1; the lower surface
	// mirrors it at the same chord stations.
	for i := 0; i < n-1; i++ {
		up := a.Points[i]
		lo := a.Points[len(a.Points)-1-i]
		if math.Abs(up[0]-lo[0]) > 1e-9 {
			t.Fatalf("station %d: upper x %v != lower x %v", i, up[0], lo[0])
		}
		if math.Abs(up[1]+lo[1]) > 1e-9 {
			t.Errorf("station %d: upper y %v is not mirrored by lower y %v", i, up[1], lo[1])
		}
	}
}

func TestNACA4ThicknessAndClosure(t *testing.T) {
	a, err := NACA4("0012", 100)
	if err != nil {
		t.Fatalf("NACA4(0012): %v", err)
	}

	maxY := 0.0
	for _, p := range a.Points {
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	// A 12% section has ~6% maximum half thickness.
	if math.Abs(maxY-0.06) > 0.002 {
		t.Errorf("max upper surface y = %v, want about 0.06", maxY)
	}

	// Closed trailing edge: both ends meet at y ~ 0.
	te := a.Points[0]
	if math.Abs(te[1]) > 1e-6 {
		t.Errorf("trailing edge y = %v, want ~0 for the closed-TE coefficient", te[1])
	}
}

func TestNACA4CamberedSection(t *testing.T) {
	a, err := NACA4("2412", 60)
	if err != nil {
		t.Fatalf("NACA4(2412): %v", err)
	}

	// Mean of upper and lower y at matching stations traces the camber
	// line, which peaks near 2% of chord around x=0.4.
	n := 60
	maxCamber := 0.0
	for i := 1; i < n-1; i++ {
		up := a.Points[i]
		lo := a.Points[len(a.Points)-1-i]
		camber := (up[1] + lo[1]) / 2
		if camber > maxCamber {
			maxCamber = camber
		}
	}
	if math.Abs(maxCamber-0.02) > 0.003 {
		t.Errorf("max camber = %v, want about 0.02", maxCamber)
	}
}

func TestNACA4InvalidInputs(t *testing.T) {
	tests := []struct {
		name          string
		designation   string
		pointsPerSide int
	}{
		{"too short", "012", 40},
		{"too long", "00123", 40},
		{"non numeric", "00x2", 40},
		{"single point per side", "0012", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NACA4(tt.designation, tt.pointsPerSide); err == nil {
				t.Errorf("NACA4(%q, %d) succeeded, want error", tt.designation, tt.pointsPerSide)
			}
		})
	}
}

func TestBuiltinAirfoilsValidate(t *testing.T) {
	for _, a := range BuiltinAirfoils() {
		if err := a.Validate(); err != nil {
			t.Errorf("built-in airfoil %q fails validation: %v", a.Name, err)
		}
	}

	if _, err := LookupBuiltin("demo"); err != nil {
		t.Errorf("LookupBuiltin(demo): %v", err)
	}
	if _, err := LookupBuiltin("naca2412"); err != nil {
		t.Errorf("LookupBuiltin(naca2412): %v", err)
	}
	if _, err := LookupBuiltin("missing"); err == nil {
		t.Error("LookupBuiltin(missing) succeeded, want error")
	}
}
