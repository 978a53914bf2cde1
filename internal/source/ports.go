package source

import (
	"context"

	"personal-budget/internal/core"
)

// Ports for inbound document adapters.
type (
	// DocumentReader produces the budget document. It is called once at startup.
	DocumentReader interface {
		Load(ctx context.Context) (core.Document, error)
	}

	// Locator is implemented by readers that can name where they read from.
	Locator interface {
		Location() string
	}
)

// Kind identifies a document source
type Kind string

const (
	KindFile   Kind = "file"
	KindSheets Kind = "sheets"
	KindSQLite Kind = "sqlite"
)

// IsValid checks if the source kind is supported
func (k Kind) IsValid() bool {
	switch k {
	case KindFile, KindSheets, KindSQLite:
		return true
	default:
		return false
	}
}

// LocationOf returns the reader's location when it exposes one.
func LocationOf(r DocumentReader) string {
	if l, ok := r.(Locator); ok {
		return l.Location()
	}
	return ""
}
