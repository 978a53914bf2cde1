package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-budget/internal/core"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmbeddedDocument(t *testing.T) {
	r := New("")
	doc, err := r.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, EmbeddedLocation, r.Location())
	require.NotEmpty(t, doc.Items)
	assert.Equal(t, core.Item{Title: "Eat out", Budget: 25}, doc.Items[0])
	assert.Equal(t, core.Item{Title: "Rent", Budget: 275}, doc.Items[1])
}

func TestLoadFormats(t *testing.T) {
	want := []core.Item{{Title: "Rent", Budget: 275}, {Title: "Grocery", Budget: 110.5}}

	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"json envelope", "b.json", `{"myBudget":[{"title":"Rent","budget":275},{"title":"Grocery","budget":110.5}]}`},
		{"json array", "b.json", ` [{"title":"Rent","budget":275},{"title":"Grocery","budget":110.5}]`},
		{"yaml envelope", "b.yaml", "myBudget:\n  - title: Rent\n    budget: 275\n  - title: Grocery\n    budget: 110.5\n"},
		{"yml array", "b.yml", "- title: Rent\n  budget: 275\n- title: Grocery\n  budget: 110.5\n"},
		{"toml", "b.toml", "[[myBudget]]\ntitle = \"Rent\"\nbudget = 275\n\n[[myBudget]]\ntitle = \"Grocery\"\nbudget = 110.5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.content)
			r := New(path)
			doc, err := r.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want, doc.Items)
			assert.Equal(t, path, r.Location())
		})
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	path := writeFile(t, "b.json", `{"myBudget":[{"title":"Z","budget":1},{"title":"A","budget":2},{"title":"M","budget":3}]}`)
	doc, err := New(path).Load(context.Background())
	require.NoError(t, err)

	titles := make([]string, 0, doc.Len())
	for _, it := range doc.Items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"Z", "A", "M"}, titles)
}

func TestLoadEmptyDocument(t *testing.T) {
	path := writeFile(t, "b.json", `{"myBudget":[]}`)
	doc, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Items)
	assert.Zero(t, doc.Len())
}

func TestLoadErrors(t *testing.T) {
	t.Run("non-numeric budget", func(t *testing.T) {
		path := writeFile(t, "b.json", `{"myBudget":[{"title":"Rent","budget":"lots"}]}`)
		_, err := New(path).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("yaml nan", func(t *testing.T) {
		path := writeFile(t, "b.yaml", "myBudget:\n  - title: Rent\n    budget: .nan\n")
		_, err := New(path).Load(context.Background())
		assert.ErrorIs(t, err, core.ErrNonNumericBudget)
	})

	t.Run("toml inf", func(t *testing.T) {
		path := writeFile(t, "b.toml", "[[myBudget]]\ntitle = \"Rent\"\nbudget = inf\n")
		_, err := New(path).Load(context.Background())
		assert.ErrorIs(t, err, core.ErrNonNumericBudget)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := writeFile(t, "b.csv", "title,budget\n")
		_, err := New(path).Load(context.Background())
		assert.ErrorIs(t, err, core.ErrUnknownFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, "b.json", `{"myBudget":[`)
		_, err := New(path).Load(context.Background())
		assert.Error(t, err)
	})
}

func TestDecodeRequiresBudget(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		data   string
	}{
		{"json null", FormatJSON, `{"myBudget":[{"title":"Rent","budget":null}]}`},
		{"json missing key", FormatJSON, `{"myBudget":[{"title":"Rent"}]}`},
		{"json array missing key", FormatJSON, `[{"title":"Rent","budget":275},{"title":"Grocery"}]`},
		{"yaml tilde", FormatYAML, "myBudget:\n  - title: Rent\n    budget: ~\n"},
		{"yaml missing key", FormatYAML, "- title: Rent\n"},
		{"toml missing key", FormatTOML, "[[myBudget]]\ntitle = \"Rent\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data), tc.format)
			require.ErrorIs(t, err, core.ErrNonNumericBudget)
		})
	}
}

func TestDecodeAcceptsZeroBudget(t *testing.T) {
	doc, err := Decode([]byte(`{"myBudget":[{"title":"Gifts","budget":0}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []core.Item{{Title: "Gifts", Budget: 0}}, doc.Items)
}
