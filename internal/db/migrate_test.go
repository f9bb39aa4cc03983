package db

import (
	"strings"
	"testing"
)

// tableExists reports whether the named table is present in the schema.
func tableExists(t *testing.T, database *DB, name string) bool {
	t.Helper()

	var count int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name,
	).Scan(&count)
	if err != nil {
		t.Fatalf("failed to check for table %s: %v", name, err)
	}
	return count > 0
}

func TestMigrateUpCreatesSchema(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	for _, table := range []string{"airfoils", "planforms", "loft_runs", "schema_migrations"} {
		if !tableExists(t, database, table) {
			t.Errorf("table %s missing after migration", table)
		}
	}

	version, dirty, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
	if dirty {
		t.Error("database should not be dirty after clean migration")
	}
}

func TestMigrateUpIdempotent(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("first MigrateUp failed: %v", err)
	}
	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
}

func TestMigrateVersionFreshDatabase(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	version, dirty, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 0 || dirty {
		t.Errorf("fresh database version = %d dirty = %v, want 0 false", version, dirty)
	}
}

func TestMigrateDownRollsBackOne(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	if err := database.MigrateDown(migrationsFS); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}

	version, _, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d after one rollback, want 1", version)
	}

	if tableExists(t, database, "loft_runs") {
		t.Error("loft_runs should be dropped by rollback")
	}
	if !tableExists(t, database, "airfoils") {
		t.Error("airfoils should survive rollback of migration 2")
	}
}

func TestMigrateToSpecificVersion(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	if err := database.MigrateTo(migrationsFS, 1); err != nil {
		t.Fatalf("MigrateTo(1) failed: %v", err)
	}
	if tableExists(t, database, "loft_runs") {
		t.Error("loft_runs should not exist at version 1")
	}

	if err := database.MigrateTo(migrationsFS, 2); err != nil {
		t.Fatalf("MigrateTo(2) failed: %v", err)
	}
	if !tableExists(t, database, "loft_runs") {
		t.Error("loft_runs should exist at version 2")
	}
}

func TestMigrateForce(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	if err := database.MigrateForce(migrationsFS, 1); err != nil {
		t.Fatalf("MigrateForce failed: %v", err)
	}

	version, dirty, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("version = %d dirty = %v after force, want 1 false", version, dirty)
	}
}

func TestGetMigrationStatus(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	status, err := database.GetMigrationStatus(migrationsFS)
	if err != nil {
		t.Fatalf("GetMigrationStatus failed: %v", err)
	}

	if status["current_version"] != uint(2) {
		t.Errorf("current_version = %v, want 2", status["current_version"])
	}
	if status["dirty"] != false {
		t.Errorf("dirty = %v, want false", status["dirty"])
	}
	if status["schema_migrations_exists"] != true {
		t.Errorf("schema_migrations_exists = %v, want true", status["schema_migrations_exists"])
	}
}

func TestGetLatestMigrationVersion(t *testing.T) {
	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	latest, err := GetLatestMigrationVersion(migrationsFS)
	if err != nil {
		t.Fatalf("GetLatestMigrationVersion failed: %v", err)
	}
	if latest != 2 {
		t.Errorf("latest version = %d, want 2", latest)
	}
}

func TestBaselineAtVersion(t *testing.T) {
	database := newEmptyTestDB(t)

	if err := database.BaselineAtVersion(1); err != nil {
		t.Fatalf("BaselineAtVersion failed: %v", err)
	}

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	version, dirty, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("version = %d dirty = %v after baseline, want 1 false", version, dirty)
	}
}

func TestBaselineRejectsExistingHistory(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	err = database.BaselineAtVersion(1)
	if err == nil {
		t.Fatal("expected error baselining a migrated database")
	}
	if !strings.Contains(err.Error(), "already has migrations") {
		t.Errorf("error = %v, want mention of existing migrations", err)
	}
}

func TestCheckAndPromptMigrations(t *testing.T) {
	database := newEmptyTestDB(t)

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		t.Fatalf("getMigrationsFS failed: %v", err)
	}

	needsExit, err := database.CheckAndPromptMigrations(migrationsFS)
	if err == nil {
		t.Fatal("expected error for out-of-date database")
	}
	if !needsExit {
		t.Error("expected needsExit for out-of-date database")
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	needsExit, err = database.CheckAndPromptMigrations(migrationsFS)
	if err != nil {
		t.Fatalf("CheckAndPromptMigrations on current database failed: %v", err)
	}
	if needsExit {
		t.Error("current database should not need exit")
	}
}
