package sheets

import (
	"fmt"
	"math"
	"strings"

	"personal-budget/internal/core"
)

// parseValues converts a values matrix into a document. The first row is the
// header; the "title" and "budget" columns are located by name (case
// insensitive) and rows with an empty title are skipped.
func parseValues(values [][]interface{}) (core.Document, error) {
	doc := core.Document{Items: []core.Item{}}
	if len(values) == 0 {
		return doc, nil
	}

	headers := toStrings(values[0])
	colTitle := indexOf(headers, "title")
	colBudget := indexOf(headers, "budget")
	if colTitle == -1 || colBudget == -1 {
		missing := make([]string, 0, 2)
		if colTitle == -1 {
			missing = append(missing, "title")
		}
		if colBudget == -1 {
			missing = append(missing, "budget")
		}
		return core.Document{}, fmt.Errorf("unexpected header: missing %s; got headers=%v", strings.Join(missing, ","), headers)
	}

	for i := 1; i < len(values); i++ {
		row := values[i]
		title := strings.TrimSpace(cellString(row, colTitle))
		if title == "" {
			continue
		}
		amount, err := cellAmount(row, colBudget)
		if err != nil {
			// Spreadsheet rows are 1-based.
			return core.Document{}, fmt.Errorf("row %d (%q): %w", i+1, title, err)
		}
		doc.Items = append(doc.Items, core.Item{Title: title, Budget: amount})
	}
	return doc, nil
}

func cellAmount(row []interface{}, idx int) (float64, error) {
	if idx >= len(row) {
		return 0, core.ErrNonNumericBudget
	}
	switch v := row[idx].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, core.ErrNonNumericBudget
		}
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return core.ParseAmount(v)
	default:
		return 0, core.ErrNonNumericBudget
	}
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}
