package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRun(airfoilID, planformID *int) *LoftRun {
	return &LoftRun{
		AirfoilID:   airfoilID,
		PlanformID:  planformID,
		DegreeU:     3,
		DegreeV:     3,
		SamplesU:    50,
		SamplesV:    50,
		Span:        10,
		Area:        10.5,
		MeanChord:   1.05,
		AspectRatio: 9.52,
		TaperRatio:  0.333,
	}
}

func TestCreateLoftRunAssignsID(t *testing.T) {
	database := newTestDB(t)

	run := newTestRun(nil, nil)
	require.NoError(t, database.CreateLoftRun(run))

	require.NotEmpty(t, run.ID, "CreateLoftRun did not assign an ID")
	assert.Len(t, run.ID, 36, "ID should look like a UUID")
}

func TestCreateLoftRunKeepsExplicitID(t *testing.T) {
	database := newTestDB(t)

	run := newTestRun(nil, nil)
	run.ID = "fixed-id-for-test"
	require.NoError(t, database.CreateLoftRun(run))
	assert.Equal(t, "fixed-id-for-test", run.ID)
}

func TestGetLoftRun(t *testing.T) {
	database := newTestDB(t)

	airfoil := createTestAirfoil(t, database, "run-airfoil")
	planform := createTestPlanform(t, database, "run-planform")

	run := newTestRun(intPtr(airfoil.ID), intPtr(planform.ID))
	require.NoError(t, database.CreateLoftRun(run))

	got, err := database.GetLoftRun(run.ID)
	require.NoError(t, err)

	require.NotNil(t, got.AirfoilID)
	assert.Equal(t, airfoil.ID, *got.AirfoilID)
	require.NotNil(t, got.PlanformID)
	assert.Equal(t, planform.ID, *got.PlanformID)
	assert.Equal(t, 3, got.DegreeU)
	assert.Equal(t, 3, got.DegreeV)
	assert.Equal(t, 10.5, got.Area)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be populated")
}

func TestGetLoftRunNotFound(t *testing.T) {
	database := newTestDB(t)

	_, err := database.GetLoftRun("does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetLoftRunNullGeometryIDs(t *testing.T) {
	database := newTestDB(t)

	run := newTestRun(nil, nil)
	require.NoError(t, database.CreateLoftRun(run))

	got, err := database.GetLoftRun(run.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AirfoilID, "inline geometry stores no airfoil ID")
	assert.Nil(t, got.PlanformID, "inline geometry stores no planform ID")
}

func TestGetRecentLoftRunsNewestFirst(t *testing.T) {
	database := newTestDB(t)

	var ids []string
	for i := 0; i < 5; i++ {
		run := newTestRun(nil, nil)
		require.NoError(t, database.CreateLoftRun(run))
		ids = append(ids, run.ID)
	}

	runs, err := database.GetRecentLoftRuns(3)
	require.NoError(t, err)

	require.Len(t, runs, 3)
	assert.Equal(t, ids[4], runs[0].ID, "most recent run first")
	assert.Equal(t, ids[2], runs[2].ID)
}

func TestGetRecentLoftRunsDefaultLimit(t *testing.T) {
	database := newTestDB(t)

	run := newTestRun(nil, nil)
	require.NoError(t, database.CreateLoftRun(run))

	runs, err := database.GetRecentLoftRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestDeleteLoftRun(t *testing.T) {
	database := newTestDB(t)

	run := newTestRun(nil, nil)
	require.NoError(t, database.CreateLoftRun(run))

	require.NoError(t, database.DeleteLoftRun(run.ID))

	_, err := database.GetLoftRun(run.ID)
	assert.ErrorIs(t, err, ErrNotFound, "loft run still present after delete")

	err = database.DeleteLoftRun(run.ID)
	assert.ErrorIs(t, err, ErrNotFound, "second delete should report missing run")
}
