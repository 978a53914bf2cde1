package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-budget/internal/config"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{25, "25"},
		{110.5, "110.50"},
		{1234.5, "1,234.50"},
		{1000000, "1,000,000"},
		{-275, "-275"},
		{999.999, "1,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in), "FormatAmount(%v)", tt.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "42.1%", FormatPercent(0.4213))
	assert.Equal(t, "100.0%", FormatPercent(1))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Budget",
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Rent", "275"},
			{"---"},
			{"Total", "275"},
		},
	})

	assert.Contains(t, out, "Budget")
	assert.Contains(t, out, "Category")
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "Total")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, top, header, header rule, row, separator, total, bottom
	assert.Len(t, lines, 8)
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestLoadAndValidateConfigAppliesOverrides(t *testing.T) {
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PORT", "abc")

	_, err := LoadAndValidateConfig()
	require.Error(t, err)

	cfg, err := LoadAndValidateConfig(func(c *config.Config) { c.Port = "8080" })
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}
