// Package sqlite reads the budget document from an existing SQLite database.
// The connection is opened query-only; the table is maintained elsewhere.
//
// Expected schema:
//
//	CREATE TABLE budget (title TEXT NOT NULL, budget REAL NOT NULL);
//
// Rows are returned in insertion (rowid) order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"net/url"

	_ "modernc.org/sqlite"

	"personal-budget/internal/core"
	"personal-budget/internal/source"
)

const selectItems = `SELECT title, budget FROM budget ORDER BY rowid`

type Reader struct {
	db   *sql.DB
	path string
}

var (
	_ source.DocumentReader = (*Reader)(nil)
	_ source.Locator        = (*Reader)(nil)
)

// Open opens dbPath without write access and checks the connection.
func Open(dbPath string) (*Reader, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Reader{db: db, path: dbPath}, nil
}

func dsn(dbPath string) string {
	q := url.Values{}
	q.Add("_pragma", "query_only(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return dbPath + "?" + q.Encode()
}

// Location implements source.Locator
func (r *Reader) Location() string {
	return "sqlite:" + r.path
}

// Load implements source.DocumentReader
func (r *Reader) Load(ctx context.Context) (core.Document, error) {
	rows, err := r.db.QueryContext(ctx, selectItems)
	if err != nil {
		return core.Document{}, fmt.Errorf("query budget items: %w", err)
	}
	defer rows.Close()

	doc := core.Document{Items: []core.Item{}}
	for rows.Next() {
		var (
			title string
			raw   any
		)
		if err := rows.Scan(&title, &raw); err != nil {
			return core.Document{}, fmt.Errorf("scan budget item: %w", err)
		}
		amount, ok := toBudget(raw)
		if !ok {
			return core.Document{}, fmt.Errorf("item %d (%q): %w", len(doc.Items), title, core.ErrNonNumericBudget)
		}
		doc.Items = append(doc.Items, core.Item{Title: title, Budget: amount})
	}
	if err := rows.Err(); err != nil {
		return core.Document{}, fmt.Errorf("iterate budget items: %w", err)
	}
	return doc, nil
}

// toBudget accepts the storage classes SQLite can hand back for a budget
// column. Text is accepted only when it is a plain decimal number.
func toBudget(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int64:
		f = float64(x)
	case string:
		return parseText(x)
	case []byte:
		return parseText(string(x))
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseText(s string) (float64, bool) {
	v, err := core.ParseAmount(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (r *Reader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
