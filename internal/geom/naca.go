package geom

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// NACA4 generates a four-digit NACA airfoil with pointsPerSide samples on
// each surface. The designation encodes camber (first digit, percent of
// chord), camber position (second digit, tenths of chord) and thickness
// (last two digits, percent of chord), e.g. "2412" is 2% camber at 40%
// chord with 12% thickness.
//
// Points are returned in Selig order: trailing edge, along the upper
// surface to the leading edge, then along the lower surface back to the
// trailing edge. X stations use cosine spacing so curvature near the
// leading edge is well resolved.
func NACA4(designation string, pointsPerSide int) (Airfoil, error) {
	if len(designation) != 4 {
		return Airfoil{}, fmt.Errorf("NACA designation must be 4 digits, got %q", designation)
	}
	var m, p, t int
	if _, err := fmt.Sscanf(designation, "%1d%1d%2d", &m, &p, &t); err != nil {
		return Airfoil{}, fmt.Errorf("invalid NACA designation %q: %w", designation, err)
	}
	if pointsPerSide < 2 {
		return Airfoil{}, fmt.Errorf("pointsPerSide must be at least 2, got %d", pointsPerSide)
	}

	maxCamber := float64(m) / 100.0
	camberPos := float64(p) / 10.0
	thickness := float64(t) / 100.0

	// Cosine-spaced chord stations from leading to trailing edge.
	xs := make([]float64, pointsPerSide)
	for i := range xs {
		beta := math.Pi * float64(i) / float64(pointsPerSide-1)
		xs[i] = 0.5 * (1 - math.Cos(beta))
	}

	upper := make([]vec3.T, pointsPerSide)
	lower := make([]vec3.T, pointsPerSide)
	for i, x := range xs {
		yt := halfThickness(x, thickness)
		yc, slope := camberLine(x, maxCamber, camberPos)
		theta := math.Atan(slope)

		upper[i] = vec3.T{x - yt*math.Sin(theta), yc + yt*math.Cos(theta), 0}
		lower[i] = vec3.T{x + yt*math.Sin(theta), yc - yt*math.Cos(theta), 0}
	}

	// Selig order: TE -> upper -> LE -> lower -> TE. The leading edge point
	// is shared, so the lower surface starts one sample in.
	points := make([]vec3.T, 0, 2*pointsPerSide-1)
	for i := pointsPerSide - 1; i >= 0; i-- {
		points = append(points, upper[i])
	}
	points = append(points, lower[1:]...)

	return Airfoil{
		Name:        "naca" + designation,
		Description: fmt.Sprintf("NACA %s (generated, %d points)", designation, len(points)),
		Points:      points,
	}, nil
}

// MustNACA4 is NACA4 for compiled-in designations; it panics on error.
func MustNACA4(designation string, pointsPerSide int) Airfoil {
	a, err := NACA4(designation, pointsPerSide)
	if err != nil {
		panic(fmt.Sprintf("built-in NACA airfoil %q: %v", designation, err))
	}
	return a
}

// halfThickness evaluates the NACA 4-digit thickness distribution at
// chord fraction x. The closed trailing edge coefficient (-0.1036) is used
// so generated sections form watertight meshes.
func halfThickness(x, thickness float64) float64 {
	return 5 * thickness * (0.2969*math.Sqrt(x) -
		0.1260*x -
		0.3516*x*x +
		0.2843*x*x*x -
		0.1036*x*x*x*x)
}

// camberLine evaluates the mean camber line and its slope at chord
// fraction x. Symmetric sections (zero camber) return 0, 0.
func camberLine(x, maxCamber, camberPos float64) (yc, slope float64) {
	if maxCamber == 0 || camberPos == 0 {
		return 0, 0
	}
	if x < camberPos {
		yc = maxCamber / (camberPos * camberPos) * (2*camberPos*x - x*x)
		slope = 2 * maxCamber / (camberPos * camberPos) * (camberPos - x)
		return yc, slope
	}
	oneMinus := 1 - camberPos
	yc = maxCamber / (oneMinus * oneMinus) * (1 - 2*camberPos + 2*camberPos*x - x*x)
	slope = 2 * maxCamber / (oneMinus * oneMinus) * (camberPos - x)
	return yc, slope
}
