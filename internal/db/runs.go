package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoftRun records one surface generation: the stored geometry it drew on,
// the spline degrees it was built at, and the planform
// metrics computed for the run. AirfoilID and PlanformID are nil when the
// geometry was supplied inline rather than loaded from the catalog.
type LoftRun struct {
	ID          string    `json:"id"`
	AirfoilID   *int      `json:"airfoil_id"`
	PlanformID  *int      `json:"planform_id"`
	DegreeU     int       `json:"degree_u"`
	DegreeV     int       `json:"degree_v"`
	SamplesU    int       `json:"samples_u"`
	SamplesV    int       `json:"samples_v"`
	Span        float64   `json:"span"`
	Area        float64   `json:"area"`
	MeanChord   float64   `json:"mean_chord"`
	AspectRatio float64   `json:"aspect_ratio"`
	TaperRatio  float64   `json:"taper_ratio"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateLoftRun creates a new loft run record. A fresh UUID is assigned
// when the run has no ID yet.
func (db *DB) CreateLoftRun(run *LoftRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	query := `
		INSERT INTO loft_runs (
			id, airfoil_id, planform_id, degree_u, degree_v,
			samples_u, samples_v, span, area, mean_chord,
			aspect_ratio, taper_ratio
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.DB.Exec(
		query,
		run.ID,
		run.AirfoilID,
		run.PlanformID,
		run.DegreeU,
		run.DegreeV,
		run.SamplesU,
		run.SamplesV,
		run.Span,
		run.Area,
		run.MeanChord,
		run.AspectRatio,
		run.TaperRatio,
	)
	if err != nil {
		return fmt.Errorf("failed to create loft run: %w", err)
	}

	return nil
}

// GetLoftRun retrieves a loft run by ID
func (db *DB) GetLoftRun(id string) (*LoftRun, error) {
	query := `
		SELECT id, airfoil_id, planform_id, degree_u, degree_v,
			samples_u, samples_v, span, area, mean_chord,
			aspect_ratio, taper_ratio, created_at
		FROM loft_runs
		WHERE id = ?
	`

	var run LoftRun
	var createdAtUnix int64

	err := db.DB.QueryRow(query, id).Scan(
		&run.ID,
		&run.AirfoilID,
		&run.PlanformID,
		&run.DegreeU,
		&run.DegreeV,
		&run.SamplesU,
		&run.SamplesV,
		&run.Span,
		&run.Area,
		&run.MeanChord,
		&run.AspectRatio,
		&run.TaperRatio,
		&createdAtUnix,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loft run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loft run: %w", err)
	}

	run.CreatedAt = time.Unix(createdAtUnix, 0)

	return &run, nil
}

// GetRecentLoftRuns retrieves the most recent loft runs, newest first.
// Insertion order breaks ties between runs created in the same second.
func (db *DB) GetRecentLoftRuns(limit int) ([]LoftRun, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, airfoil_id, planform_id, degree_u, degree_v,
			samples_u, samples_v, span, area, mean_chord,
			aspect_ratio, taper_ratio, created_at
		FROM loft_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := db.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query loft runs: %w", err)
	}
	defer rows.Close()

	var runs []LoftRun
	for rows.Next() {
		var run LoftRun
		var createdAtUnix int64

		err := rows.Scan(
			&run.ID,
			&run.AirfoilID,
			&run.PlanformID,
			&run.DegreeU,
			&run.DegreeV,
			&run.SamplesU,
			&run.SamplesV,
			&run.Span,
			&run.Area,
			&run.MeanChord,
			&run.AspectRatio,
			&run.TaperRatio,
			&createdAtUnix,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loft run: %w", err)
		}

		run.CreatedAt = time.Unix(createdAtUnix, 0)

		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loft runs: %w", err)
	}

	return runs, nil
}

// DeleteLoftRun deletes a loft run record
func (db *DB) DeleteLoftRun(id string) error {
	query := `DELETE FROM loft_runs WHERE id = ?`

	result, err := db.DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete loft run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("loft run %s: %w", id, ErrNotFound)
	}

	return nil
}
