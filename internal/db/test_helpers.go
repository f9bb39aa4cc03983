package db

import (
	"path/filepath"
	"testing"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/chordline-aero/wingloft/internal/geom"
)

// Helper functions for creating pointer values
func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

// newTestDB opens a migrated, seeded database in a per-test temp dir.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := NewDB(filepath.Join(t.TempDir(), "wingloft-test.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

// newEmptyTestDB opens an unmigrated database in a per-test temp dir.
func newEmptyTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenDB(filepath.Join(t.TempDir(), "wingloft-empty.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

// createTestAirfoil inserts a small user airfoil and returns it.
func createTestAirfoil(t *testing.T, database *DB, name string) *Airfoil {
	t.Helper()

	airfoil := &Airfoil{
		Name:        name,
		Description: strPtr("Test airfoil"),
		Source:      "test",
		Points: []vec3.T{
			{1, 0, 0},
			{0.5, 0.1, 0},
			{0, 0, 0},
		},
	}

	if err := database.CreateAirfoil(airfoil); err != nil {
		t.Fatalf("CreateAirfoil failed: %v", err)
	}

	return airfoil
}

// createTestPlanform inserts a simple two-station user planform and returns it.
func createTestPlanform(t *testing.T, database *DB, name string) *Planform {
	t.Helper()

	planform := &Planform{
		Name:        name,
		Description: strPtr("Test planform"),
		Stations: []geom.Station{
			{SpanPos: 0, Chord: 2, SweepDeg: 0},
			{SpanPos: 8, Chord: 1, SweepDeg: 15},
		},
	}

	if err := database.CreatePlanform(planform); err != nil {
		t.Fatalf("CreatePlanform failed: %v", err)
	}

	return planform
}
