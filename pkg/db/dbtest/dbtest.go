// Package dbtest provides the sqlite fixture shared by repository tests.
// Every test gets its own named in-memory database so suites never share
// mutable state.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/pkg/db/models"
)

var dbSeq atomic.Int64

// Open returns a fresh in-memory database with the inventory schema migrated
// and foreign key enforcement on.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dbtest_%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	err = conn.AutoMigrate(
		&models.Owner{},
		&models.Dealership{},
		&models.CarMakeOption{},
		&models.CarModelOption{},
		&models.CarColorOption{},
		&models.Car{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return conn
}
