package postgres

import "testing"

func TestRunMigrationsMissingSource(t *testing.T) {
	if err := RunMigrations("postgres://localhost:1/none?sslmode=disable", "/nonexistent/migrations"); err == nil {
		t.Fatal("expected error for missing migrations directory")
	}
}

func TestRunMigrationsDownMissingSource(t *testing.T) {
	if err := RunMigrationsDown("postgres://localhost:1/none?sslmode=disable", "/nonexistent/migrations"); err == nil {
		t.Fatal("expected error for missing migrations directory")
	}
}
