package repository

import (
	"database/sql"
	"io"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"apunab/internal/database"
	"apunab/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(logger.ErrorLevel, io.Discard)
}

// newTestDB opens an in-memory sqlite database with the full schema
// applied. A single connection keeps every query on the same database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	migrations := database.NewMigrationService(db, testLogger())
	if err := migrations.RunMigrations(); err != nil {
		t.Fatalf("migrasyonlar uygulanamadı: %v", err)
	}

	return db
}
