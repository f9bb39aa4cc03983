package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chordline-aero/wingloft/internal/geom"
)

// Planform represents a stored wing plan. Stations holds the spanwise
// definition; the stations column stores them as a JSON array.
type Planform struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Stations    []geom.Station `json:"stations"`
	IsSystem    bool           `json:"is_system"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Geometry converts the stored row into a geometry planform.
func (p *Planform) Geometry() geom.Planform {
	description := ""
	if p.Description != nil {
		description = *p.Description
	}
	return geom.Planform{
		Name:        p.Name,
		Description: description,
		Stations:    p.Stations,
	}
}

// CreatePlanform creates a new planform in the database
func (db *DB) CreatePlanform(planform *Planform) error {
	stationsJSON, err := json.Marshal(planform.Stations)
	if err != nil {
		return fmt.Errorf("failed to encode planform stations: %w", err)
	}

	query := `
		INSERT INTO planforms (name, description, stations, is_system)
		VALUES (?, ?, ?, ?)
	`

	isSystem := 0
	if planform.IsSystem {
		isSystem = 1
	}

	result, err := db.DB.Exec(
		query,
		planform.Name,
		planform.Description,
		string(stationsJSON),
		isSystem,
	)
	if err != nil {
		return fmt.Errorf("failed to create planform: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	planform.ID = int(id)
	return nil
}

// GetPlanform retrieves a planform by ID
func (db *DB) GetPlanform(id int) (*Planform, error) {
	query := `
		SELECT id, name, description, stations, is_system, created_at, updated_at
		FROM planforms
		WHERE id = ?
	`

	var planform Planform
	var stationsJSON string
	var isSystem int
	var createdAtUnix, updatedAtUnix int64

	err := db.DB.QueryRow(query, id).Scan(
		&planform.ID,
		&planform.Name,
		&planform.Description,
		&stationsJSON,
		&isSystem,
		&createdAtUnix,
		&updatedAtUnix,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("planform %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planform: %w", err)
	}

	if err := json.Unmarshal([]byte(stationsJSON), &planform.Stations); err != nil {
		return nil, fmt.Errorf("failed to decode planform stations: %w", err)
	}
	planform.IsSystem = isSystem == 1
	planform.CreatedAt = time.Unix(createdAtUnix, 0)
	planform.UpdatedAt = time.Unix(updatedAtUnix, 0)

	return &planform, nil
}

// GetPlanformByName retrieves a planform by its unique name.
// Returns nil, nil when no planform has that name.
func (db *DB) GetPlanformByName(name string) (*Planform, error) {
	query := `
		SELECT id, name, description, stations, is_system, created_at, updated_at
		FROM planforms
		WHERE name = ?
	`

	var planform Planform
	var stationsJSON string
	var isSystem int
	var createdAtUnix, updatedAtUnix int64

	err := db.DB.QueryRow(query, name).Scan(
		&planform.ID,
		&planform.Name,
		&planform.Description,
		&stationsJSON,
		&isSystem,
		&createdAtUnix,
		&updatedAtUnix,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found is OK, return nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get planform: %w", err)
	}

	if err := json.Unmarshal([]byte(stationsJSON), &planform.Stations); err != nil {
		return nil, fmt.Errorf("failed to decode planform stations: %w", err)
	}
	planform.IsSystem = isSystem == 1
	planform.CreatedAt = time.Unix(createdAtUnix, 0)
	planform.UpdatedAt = time.Unix(updatedAtUnix, 0)

	return &planform, nil
}

// GetAllPlanforms retrieves all planforms from the database
func (db *DB) GetAllPlanforms() ([]Planform, error) {
	query := `
		SELECT id, name, description, stations, is_system, created_at, updated_at
		FROM planforms
		ORDER BY name ASC
	`

	rows, err := db.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query planforms: %w", err)
	}
	defer rows.Close()

	var planforms []Planform
	for rows.Next() {
		var planform Planform
		var stationsJSON string
		var isSystem int
		var createdAtUnix, updatedAtUnix int64

		err := rows.Scan(
			&planform.ID,
			&planform.Name,
			&planform.Description,
			&stationsJSON,
			&isSystem,
			&createdAtUnix,
			&updatedAtUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planform: %w", err)
		}

		if err := json.Unmarshal([]byte(stationsJSON), &planform.Stations); err != nil {
			return nil, fmt.Errorf("failed to decode planform stations: %w", err)
		}
		planform.IsSystem = isSystem == 1
		planform.CreatedAt = time.Unix(createdAtUnix, 0)
		planform.UpdatedAt = time.Unix(updatedAtUnix, 0)

		planforms = append(planforms, planform)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating planforms: %w", err)
	}

	return planforms, nil
}

// UpdatePlanform updates an existing planform (only non-system planforms)
func (db *DB) UpdatePlanform(planform *Planform) error {
	// First check if it's a system planform
	existing, err := db.GetPlanform(planform.ID)
	if err != nil {
		return err
	}

	if existing.IsSystem {
		return fmt.Errorf("cannot update system planform")
	}

	stationsJSON, err := json.Marshal(planform.Stations)
	if err != nil {
		return fmt.Errorf("failed to encode planform stations: %w", err)
	}

	query := `
		UPDATE planforms SET
			name = ?,
			description = ?,
			stations = ?,
			updated_at = strftime('%s', 'now')
		WHERE id = ?
	`

	result, err := db.DB.Exec(
		query,
		planform.Name,
		planform.Description,
		string(stationsJSON),
		planform.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update planform: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("planform %d: %w", planform.ID, ErrNotFound)
	}

	return nil
}

// DeletePlanform deletes a planform (only non-system planforms)
func (db *DB) DeletePlanform(id int) error {
	// The trigger will prevent deletion of system planforms
	query := `DELETE FROM planforms WHERE id = ?`

	result, err := db.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete planform: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("planform %d: %w (system planforms cannot be deleted)", id, ErrNotFound)
	}

	return nil
}
