// Package dbtest opens throwaway migrated sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"printshop/internal/db"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenAndMigrate("sqlite:" + filepath.Join(t.TempDir(), "printshop.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
