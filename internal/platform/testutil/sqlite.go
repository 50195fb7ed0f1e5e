// Package testutil opens throwaway databases for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shareit/service-shareit/internal/platform/database"
)

// OpenSQLite opens a file-backed SQLite database under t.TempDir and runs migrate on it.
func OpenSQLite(t *testing.T, migrate func(*gorm.DB) error) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "shareit.db") + "?_busy_timeout=5000&_foreign_keys=off"
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
