package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/kendall-kelly/ecom-reports/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryDSN returns a DSN for a private in-memory SQLite database.
// The shared cache keeps every pooled connection on the same database.
func MemoryDSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
}

// NewTestDB opens an empty in-memory database without any tables
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(MemoryDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewMigratedDB opens an in-memory database with the base tables created
func NewMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}
