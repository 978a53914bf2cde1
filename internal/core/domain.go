package core

import (
	"errors"
	"fmt"
	"math"
)

type (
	// Item is a named budget category paired with its allocated amount.
	Item struct {
		Title  string  `json:"title" yaml:"title" toml:"title"`
		Budget float64 `json:"budget" yaml:"budget" toml:"budget"`
	}

	// Document is the ordered collection of items served by the API.
	// It is loaded once at startup and never mutated afterwards.
	Document struct {
		Items []Item `json:"myBudget" yaml:"myBudget" toml:"myBudget"`
	}
)

var (
	ErrNonNumericBudget = errors.New("budget is not a finite number")
	ErrUnknownFormat    = errors.New("unknown document format")
	ErrUnknownSource    = errors.New("unknown document source")
)

func (i Item) Validate() error {
	if math.IsNaN(i.Budget) || math.IsInf(i.Budget, 0) {
		return fmt.Errorf("item %q: %w", i.Title, ErrNonNumericBudget)
	}
	return nil
}

// Validate checks every item. An empty document is valid.
func (d Document) Validate() error {
	for idx, it := range d.Items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	return nil
}

// Len returns the number of items.
func (d Document) Len() int {
	return len(d.Items)
}
