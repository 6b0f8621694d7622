// Package models holds the gorm tables of the catalog snapshot and the
// back-office accounts.
package models

import "time"

// Base is embedded by every table.
type Base struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// All lists every table for AutoMigrate.
func All() []any {
	return []any{&Product{}, &Collection{}, &SyncRun{}, &User{}}
}
