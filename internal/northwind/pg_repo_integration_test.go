//go:build integration

package northwind_test

import (
	"os"
	"testing"
)

// TestPGRepo_AgreesWithGormRepo_Northwind runs the agreement cases against a full
// Northwind database, whose real-typed money columns the snapshot does not use.
// Run with: NORTHWIND_TEST_POSTGRES_DSN=postgres://... go test -tags integration ./...
func TestPGRepo_AgreesWithGormRepo_Northwind(t *testing.T) {
	dsn := os.Getenv("NORTHWIND_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("NORTHWIND_TEST_POSTGRES_DSN not set")
	}
	ds, _ := openPostgresDataset(t, dsn)
	assertFormsAgree(t, ds)
}
