package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/chordline-aero/wingloft/internal/geom"
)

// Airfoil represents a stored 2-D section profile. Points holds the
// normalised coordinates; the points column stores them as a JSON array
// of [x, y, z] triples with z always zero.
type Airfoil struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Source      string    `json:"source"`
	Points      []vec3.T  `json:"points"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section converts the stored row into a geometry airfoil.
func (a *Airfoil) Section() geom.Airfoil {
	description := ""
	if a.Description != nil {
		description = *a.Description
	}
	return geom.Airfoil{
		Name:        a.Name,
		Description: description,
		Points:      a.Points,
	}
}

// CreateAirfoil creates a new airfoil in the database
func (db *DB) CreateAirfoil(airfoil *Airfoil) error {
	pointsJSON, err := json.Marshal(airfoil.Points)
	if err != nil {
		return fmt.Errorf("failed to encode airfoil points: %w", err)
	}

	query := `
		INSERT INTO airfoils (name, description, source, points, is_system)
		VALUES (?, ?, ?, ?, ?)
	`

	isSystem := 0
	if airfoil.IsSystem {
		isSystem = 1
	}

	result, err := db.DB.Exec(
		query,
		airfoil.Name,
		airfoil.Description,
		airfoil.Source,
		string(pointsJSON),
		isSystem,
	)
	if err != nil {
		return fmt.Errorf("failed to create airfoil: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	airfoil.ID = int(id)
	return nil
}

// GetAirfoil retrieves an airfoil by ID
func (db *DB) GetAirfoil(id int) (*Airfoil, error) {
	query := `
		SELECT id, name, description, source, points, is_system, created_at, updated_at
		FROM airfoils
		WHERE id = ?
	`

	var airfoil Airfoil
	var pointsJSON string
	var isSystem int
	var createdAtUnix, updatedAtUnix int64

	err := db.DB.QueryRow(query, id).Scan(
		&airfoil.ID,
		&airfoil.Name,
		&airfoil.Description,
		&airfoil.Source,
		&pointsJSON,
		&isSystem,
		&createdAtUnix,
		&updatedAtUnix,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("airfoil %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get airfoil: %w", err)
	}

	if err := json.Unmarshal([]byte(pointsJSON), &airfoil.Points); err != nil {
		return nil, fmt.Errorf("failed to decode airfoil points: %w", err)
	}
	airfoil.IsSystem = isSystem == 1
	airfoil.CreatedAt = time.Unix(createdAtUnix, 0)
	airfoil.UpdatedAt = time.Unix(updatedAtUnix, 0)

	return &airfoil, nil
}

// GetAirfoilByName retrieves an airfoil by its unique name.
// Returns nil, nil when no airfoil has that name.
func (db *DB) GetAirfoilByName(name string) (*Airfoil, error) {
	query := `
		SELECT id, name, description, source, points, is_system, created_at, updated_at
		FROM airfoils
		WHERE name = ?
	`

	var airfoil Airfoil
	var pointsJSON string
	var isSystem int
	var createdAtUnix, updatedAtUnix int64

	err := db.DB.QueryRow(query, name).Scan(
		&airfoil.ID,
		&airfoil.Name,
		&airfoil.Description,
		&airfoil.Source,
		&pointsJSON,
		&isSystem,
		&createdAtUnix,
		&updatedAtUnix,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found is OK, return nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get airfoil: %w", err)
	}

	if err := json.Unmarshal([]byte(pointsJSON), &airfoil.Points); err != nil {
		return nil, fmt.Errorf("failed to decode airfoil points: %w", err)
	}
	airfoil.IsSystem = isSystem == 1
	airfoil.CreatedAt = time.Unix(createdAtUnix, 0)
	airfoil.UpdatedAt = time.Unix(updatedAtUnix, 0)

	return &airfoil, nil
}

// GetAllAirfoils retrieves all airfoils from the database
func (db *DB) GetAllAirfoils() ([]Airfoil, error) {
	query := `
		SELECT id, name, description, source, points, is_system, created_at, updated_at
		FROM airfoils
		ORDER BY name ASC
	`

	rows, err := db.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query airfoils: %w", err)
	}
	defer rows.Close()

	var airfoils []Airfoil
	for rows.Next() {
		var airfoil Airfoil
		var pointsJSON string
		var isSystem int
		var createdAtUnix, updatedAtUnix int64

		err := rows.Scan(
			&airfoil.ID,
			&airfoil.Name,
			&airfoil.Description,
			&airfoil.Source,
			&pointsJSON,
			&isSystem,
			&createdAtUnix,
			&updatedAtUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan airfoil: %w", err)
		}

		if err := json.Unmarshal([]byte(pointsJSON), &airfoil.Points); err != nil {
			return nil, fmt.Errorf("failed to decode airfoil points: %w", err)
		}
		airfoil.IsSystem = isSystem == 1
		airfoil.CreatedAt = time.Unix(createdAtUnix, 0)
		airfoil.UpdatedAt = time.Unix(updatedAtUnix, 0)

		airfoils = append(airfoils, airfoil)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airfoils: %w", err)
	}

	return airfoils, nil
}

// UpdateAirfoil updates an existing airfoil (only non-system airfoils)
func (db *DB) UpdateAirfoil(airfoil *Airfoil) error {
	// First check if it's a system airfoil
	existing, err := db.GetAirfoil(airfoil.ID)
	if err != nil {
		return err
	}

	if existing.IsSystem {
		return fmt.Errorf("cannot update system airfoil")
	}

	pointsJSON, err := json.Marshal(airfoil.Points)
	if err != nil {
		return fmt.Errorf("failed to encode airfoil points: %w", err)
	}

	query := `
		UPDATE airfoils SET
			name = ?,
			description = ?,
			source = ?,
			points = ?,
			updated_at = strftime('%s', 'now')
		WHERE id = ?
	`

	result, err := db.DB.Exec(
		query,
		airfoil.Name,
		airfoil.Description,
		airfoil.Source,
		string(pointsJSON),
		airfoil.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update airfoil: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("airfoil %d: %w", airfoil.ID, ErrNotFound)
	}

	return nil
}

// DeleteAirfoil deletes an airfoil (only non-system airfoils)
func (db *DB) DeleteAirfoil(id int) error {
	// The trigger will prevent deletion of system airfoils
	query := `DELETE FROM airfoils WHERE id = ?`

	result, err := db.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete airfoil: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("airfoil %d: %w (system airfoils cannot be deleted)", id, ErrNotFound)
	}

	return nil
}
