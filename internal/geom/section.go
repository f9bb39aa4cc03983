package geom

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/chordline-aero/wingloft/internal/units"
)

// TransformSection places a normalised airfoil at a planform station and
// returns the resulting 3-D point row. The transform is applied in a fixed
// order:
//
//  1. scale x and y by the station chord (any incoming z is discarded)
//  2. pitch about the quarter-chord point by the station twist
//  3. shear x aft by spanPos * tan(sweep)
//  4. translate along the stacking axis to z = spanPos
//
// A zero twist reduces steps 1-4 to scale, shear, translate.
func TransformSection(a Airfoil, st Station) []vec3.T {
	sweepDist := st.SpanPos * math.Tan(units.Radians(st.SweepDeg))

	twist := units.Radians(st.TwistDeg)
	sinT, cosT := math.Sin(twist), math.Cos(twist)
	pivotX := 0.25 * st.Chord

	out := make([]vec3.T, len(a.Points))
	for i, p := range a.Points {
		x := p[0] * st.Chord
		y := p[1] * st.Chord

		if st.TwistDeg != 0 {
			// Positive twist raises the leading edge. x runs toward the
			// trailing edge, so that is a clockwise rotation about the
			// quarter-chord pivot.
			dx := x - pivotX
			x = pivotX + dx*cosT + y*sinT
			y = -dx*sinT + y*cosT
		}

		out[i] = vec3.T{x + sweepDist, y, st.SpanPos}
	}
	return out
}

// GenerateSections transforms the airfoil once per planform station and
// returns the rows in root-to-tip order. Every row has the same point
// count, which the control grid assembly relies on.
func GenerateSections(a Airfoil, p Planform) [][]vec3.T {
	sections := make([][]vec3.T, len(p.Stations))
	for i, st := range p.Stations {
		sections[i] = TransformSection(a, st)
	}
	return sections
}
