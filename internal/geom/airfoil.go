// Package geom provides airfoil and planform geometry for wing lofting.
//
// Airfoil sections are stored as ordered 2-D point lists normalised to a
// unit chord (x runs 0..1 from leading edge to trailing edge, y is the
// surface offset). Planforms place those sections along the span. The
// section transform produces the 3-D point rows that the loft package
// assembles into a spline control grid.
package geom

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Airfoil is a named, ordered list of normalised section coordinates.
// Points use vec3.T so they can feed the spline control grid directly;
// the z component of a normalised airfoil is always zero.
type Airfoil struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Points      []vec3.T `json:"points"`
}

// Validate checks that the airfoil has a name and enough points to be
// usable as a section. Chordwise ordering is the caller's responsibility;
// both single-surface (upper only) and full-loop profiles are accepted.
func (a *Airfoil) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("airfoil name is required")
	}
	if len(a.Points) < 2 {
		return fmt.Errorf("airfoil %q needs at least 2 points, got %d", a.Name, len(a.Points))
	}
	return nil
}

// PointCount returns the number of section coordinates.
func (a *Airfoil) PointCount() int {
	return len(a.Points)
}

// demoUpperPoints is a coarse single-surface profile running from the
// trailing edge (x=1) to the leading edge (x=0). It is deliberately simple
// so lofting behaviour is easy to inspect by eye.
var demoUpperPoints = []vec3.T{
	{1.0, 0.0, 0},
	{0.9, 0.05, 0},
	{0.8, 0.08, 0},
	{0.7, 0.10, 0},
	{0.6, 0.08, 0},
	{0.5, 0.06, 0},
	{0.4, 0.04, 0},
	{0.3, 0.02, 0},
	{0.2, 0.01, 0},
	{0.1, 0.0, 0},
	{0.0, 0.0, 0},
}

// BuiltinAirfoils returns the catalog of airfoils compiled into the binary.
// The demo profile is a hand-drawn upper surface; the NACA entries are
// generated from the 4-digit thickness and camber equations.
func BuiltinAirfoils() []Airfoil {
	return []Airfoil{
		{
			Name:        "demo",
			Description: "Coarse 11-point upper-surface demonstration profile",
			Points:      append([]vec3.T(nil), demoUpperPoints...),
		},
		MustNACA4("0012", 40),
		MustNACA4("2412", 40),
		MustNACA4("4412", 40),
	}
}

// LookupBuiltin returns the built-in airfoil with the given name, or an
// error naming the available profiles.
func LookupBuiltin(name string) (Airfoil, error) {
	for _, a := range BuiltinAirfoils() {
		if a.Name == name {
			return a, nil
		}
	}
	names := make([]string, 0, 4)
	for _, a := range BuiltinAirfoils() {
		names = append(names, a.Name)
	}
	return Airfoil{}, fmt.Errorf("unknown built-in airfoil %q (have %v)", name, names)
}
