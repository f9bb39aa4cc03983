// Package units provides shared constants and validation for display units
package units

import "math"

// Unit constants
const (
	Meters      = "m"
	Millimeters = "mm"
	Feet        = "ft"
	Inches      = "in"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Meters, Millimeters, Feet, Inches}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, mm, ft, in"
}

// ConvertLength converts a length from meters to the target units
// Geometry is stored in meters
func ConvertLength(lengthM float64, targetUnits string) float64 {
	switch targetUnits {
	case Millimeters:
		return lengthM * 1000.0
	case Feet:
		return lengthM * 3.28084 // m to ft
	case Inches:
		return lengthM * 39.3701 // m to in
	case Meters:
		return lengthM // no conversion needed
	default:
		return lengthM // default to meters if unknown unit
	}
}

// ConvertArea converts an area from square meters to the target units squared
func ConvertArea(areaM2 float64, targetUnits string) float64 {
	scale := ConvertLength(1.0, targetUnits)
	return areaM2 * scale * scale
}

// Radians converts an angle in degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Degrees converts an angle in radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
