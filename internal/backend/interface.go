package backend

import (
	"context"

	"personal-budget/internal/source"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the reader instance and optional cleanup function
type Result struct {
	Reader   source.DocumentReader
	Kind     source.Kind
	Location string
	Cleanup  CleanupFunc
}

// Factory creates document readers based on configuration
type Factory interface {
	CreateReader(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for reader creation
type Config struct {
	Kind source.Kind

	// File specific; empty selects the embedded document
	BudgetFile string

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID       string
	GoogleSheetRange          string
	GoogleServiceAccountJSON  string
	GoogleServiceAccountFile  string
	GoogleApplicationCredsEnv string
}
