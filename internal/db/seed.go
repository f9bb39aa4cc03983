package db

import (
	"fmt"
	"log"

	"github.com/chordline-aero/wingloft/internal/geom"
)

// SeedBuiltins inserts the compiled-in airfoil catalog and the demo
// planform as system rows. Rows that already exist are left untouched,
// so this is safe to run on every startup.
func (db *DB) SeedBuiltins() error {
	seeded := 0

	for _, section := range geom.BuiltinAirfoils() {
		existing, err := db.GetAirfoilByName(section.Name)
		if err != nil {
			return fmt.Errorf("failed to check for airfoil %q: %w", section.Name, err)
		}
		if existing != nil {
			continue
		}

		airfoil := &Airfoil{
			Name:     section.Name,
			Source:   "builtin",
			Points:   section.Points,
			IsSystem: true,
		}
		if section.Description != "" {
			airfoil.Description = &section.Description
		}

		if err := db.CreateAirfoil(airfoil); err != nil {
			return fmt.Errorf("failed to seed airfoil %q: %w", section.Name, err)
		}
		seeded++
	}

	demo := geom.DemoPlanform()
	existing, err := db.GetPlanformByName(demo.Name)
	if err != nil {
		return fmt.Errorf("failed to check for planform %q: %w", demo.Name, err)
	}
	if existing == nil {
		planform := &Planform{
			Name:     demo.Name,
			Stations: demo.Stations,
			IsSystem: true,
		}
		if demo.Description != "" {
			planform.Description = &demo.Description
		}

		if err := db.CreatePlanform(planform); err != nil {
			return fmt.Errorf("failed to seed planform %q: %w", demo.Name, err)
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("Seeded %d built-in geometry entries", seeded)
	}

	return nil
}
