package geom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
)

// ParseDatFile reads a Selig-format airfoil coordinate file: an optional
// name line followed by one "x y" pair per line, ordered around the
// profile. Blank lines are skipped. Lednicer files (which lead with
// surface point counts greater than 1) are rejected rather than silently
// misread.
func ParseDatFile(r io.Reader, fallbackName string) (Airfoil, error) {
	scanner := bufio.NewScanner(r)

	name := fallbackName
	var points []vec3.T
	lineNo := 0
	firstContent := true
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		x, errX := strconv.ParseFloat(fields[0], 64)
		var y float64
		errY := fmt.Errorf("missing y coordinate")
		if len(fields) >= 2 {
			y, errY = strconv.ParseFloat(fields[1], 64)
		}

		if errX != nil || errY != nil {
			// Only the very first content line may be the name; a later
			// non-numeric line means the file is malformed.
			if firstContent {
				name = line
				firstContent = false
				continue
			}
			return Airfoil{}, fmt.Errorf("line %d: cannot parse coordinates %q", lineNo, line)
		}
		firstContent = false

		// Lednicer files follow the name line with the upper/lower point
		// counts, e.g. "61. 61.". Those are not coordinates.
		if len(points) == 0 && x > 1.5 && y > 1.5 {
			return Airfoil{}, fmt.Errorf("line %d: point-count header %q suggests Lednicer format, which is not supported", lineNo, line)
		}

		points = append(points, vec3.T{x, y, 0})
	}
	if err := scanner.Err(); err != nil {
		return Airfoil{}, fmt.Errorf("failed to read airfoil data: %w", err)
	}

	a := Airfoil{Name: name, Points: points}
	if err := a.Validate(); err != nil {
		return Airfoil{}, err
	}
	return a, nil
}

// LoadDatFile opens and parses a Selig-format coordinate file. The airfoil
// name defaults to the file's base name without extension when the file has
// no name line.
func LoadDatFile(path string) (Airfoil, error) {
	f, err := os.Open(path)
	if err != nil {
		return Airfoil{}, fmt.Errorf("failed to open airfoil file: %w", err)
	}
	defer f.Close()

	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}

	return ParseDatFile(f, base)
}
