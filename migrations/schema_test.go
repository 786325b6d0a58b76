package migrations_test

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Una precisión fija redondea entradas al escribir y desborda con porcentajes de desvío grandes.
func TestSchema_NumericSinPrecision(t *testing.T) {
	raw, err := os.ReadFile("001_production.sql")
	require.NoError(t, err)

	constrained := regexp.MustCompile(`(?i)NUMERIC\s*\(`)
	assert.Empty(t, constrained.FindAllString(string(raw), -1))

	for _, col := range []string{"variance_percent", "fill_percentage", "density_at_15c", "total_weight", "tonnage", "value"} {
		assert.Regexp(t, `(?m)^\s+`+col+`\s+NUMERIC\b`, string(raw), col)
	}
}
