// Package file reads the budget document from a JSON, YAML or TOML file, or
// from the copy embedded in the binary.
package file

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"personal-budget/internal/core"
	"personal-budget/internal/source"
)

//go:embed budget_data.json
var embeddedDocument []byte

// EmbeddedLocation is reported as the location of the built-in document.
const EmbeddedLocation = "embedded:budget_data.json"

// Format is a supported document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

type Reader struct {
	path string
}

var (
	_ source.DocumentReader = (*Reader)(nil)
	_ source.Locator        = (*Reader)(nil)
)

// New returns a reader for path. An empty path selects the embedded document.
func New(path string) *Reader {
	return &Reader{path: strings.TrimSpace(path)}
}

// Location implements source.Locator
func (r *Reader) Location() string {
	if r.path == "" {
		return EmbeddedLocation
	}
	return r.path
}

// Load implements source.DocumentReader
func (r *Reader) Load(_ context.Context) (core.Document, error) {
	if r.path == "" {
		return Decode(embeddedDocument, FormatJSON)
	}

	format, err := FormatFromPath(r.path)
	if err != nil {
		return core.Document{}, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return core.Document{}, fmt.Errorf("read budget file: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return core.Document{}, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return doc, nil
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownFormat, filepath.Ext(path))
	}
}

// itemRecord mirrors core.Item with an optional budget so that a missing or
// null value can be told apart from zero.
type itemRecord struct {
	Title  string   `json:"title" yaml:"title" toml:"title"`
	Budget *float64 `json:"budget" yaml:"budget" toml:"budget"`
}

type documentRecord struct {
	Items []itemRecord `json:"myBudget" yaml:"myBudget" toml:"myBudget"`
}

func (d documentRecord) document() (core.Document, error) {
	doc := core.Document{Items: make([]core.Item, 0, len(d.Items))}
	for i, rec := range d.Items {
		if rec.Budget == nil {
			return core.Document{}, fmt.Errorf("item %d (%q): %w", i, rec.Title, core.ErrNonNumericBudget)
		}
		doc.Items = append(doc.Items, core.Item{Title: rec.Title, Budget: *rec.Budget})
	}
	return doc, nil
}

// Decode parses data in the given format. JSON and YAML accept either the
// {"myBudget": [...]} envelope or a bare list of items; TOML has no top-level
// arrays and only accepts the envelope. Every item needs a numeric budget.
func Decode(data []byte, format Format) (core.Document, error) {
	var (
		rec documentRecord
		err error
	)
	switch format {
	case FormatJSON:
		rec, err = decodeJSON(data)
	case FormatYAML:
		rec, err = decodeYAML(data)
	case FormatTOML:
		err = toml.Unmarshal(data, &rec)
	default:
		err = fmt.Errorf("%w: %q", core.ErrUnknownFormat, format)
	}
	if err != nil {
		return core.Document{}, err
	}

	doc, err := rec.document()
	if err != nil {
		return core.Document{}, err
	}
	if err := doc.Validate(); err != nil {
		return core.Document{}, err
	}
	return doc, nil
}

func decodeJSON(data []byte) (documentRecord, error) {
	var rec documentRecord
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err := json.Unmarshal(trimmed, &rec.Items)
		return rec, err
	}
	err := json.Unmarshal(trimmed, &rec)
	return rec, err
}

func decodeYAML(data []byte) (documentRecord, error) {
	var rec documentRecord
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return rec, err
	}
	if len(root.Content) == 0 {
		return rec, nil
	}
	if root.Content[0].Kind == yaml.SequenceNode {
		err := root.Content[0].Decode(&rec.Items)
		return rec, err
	}
	err := root.Content[0].Decode(&rec)
	return rec, err
}
