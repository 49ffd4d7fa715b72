// Package backend selects and builds the row store the bot runs on.
package backend

import (
	"time"

	"finanzas/internal/sheets"
)

// CleanupFunc releases whatever resources the store holds.
type CleanupFunc func() error

// Result contains the store instance and an optional cleanup function.
type Result struct {
	Store   sheets.Store
	Cleanup CleanupFunc
}

// Config holds what each backend type needs to come up.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
	StoreTimeout             time.Duration
}

// Type names a row store implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	SheetsBackend Type = "sheets"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SheetsBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
