package loft

import "fmt"

// ClampedUniformKnots builds the knot vector the spline constructor
// expects for count control points at the given degree: degree+1 zeros,
// evenly spaced interior knots, degree+1 ones. The layout matches what
// verb validates against (len = count + degree + 1, clamped both ends)
// and pins the surface to the first and last control points.
func ClampedUniformKnots(count, degree int) ([]float64, error) {
	if degree < 1 {
		return nil, fmt.Errorf("degree must be at least 1, got %d", degree)
	}
	if count < degree+1 {
		return nil, fmt.Errorf("need at least %d control points for degree %d, got %d", degree+1, degree, count)
	}

	knots := make([]float64, 0, count+degree+1)
	for i := 0; i <= degree; i++ {
		knots = append(knots, 0)
	}
	segments := count - degree
	for i := 1; i < segments; i++ {
		knots = append(knots, float64(i)/float64(segments))
	}
	for i := 0; i <= degree; i++ {
		knots = append(knots, 1)
	}
	return knots, nil
}

// uniformWeights returns an all-ones weight grid, which makes the rational
// surface collapse to a plain B-spline through the control points.
func uniformWeights(numU, numV int) [][]float64 {
	weights := make([][]float64, numU)
	for i := range weights {
		row := make([]float64, numV)
		for j := range row {
			row[j] = 1
		}
		weights[i] = row
	}
	return weights
}
