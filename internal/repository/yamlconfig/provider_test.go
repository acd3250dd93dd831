package yamlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: 1
effective_from: "2026-01-01"
tax_bands:
  - upper_bound: "5100"
    rate: "0"
  - upper_bound: "7100"
    rate: "0.20"
  - rate: "0.37"
napsa_rate: "0.05"
napsa_ceiling: "8000"
nhima_rate: "0.01"
overtime_multiplier: "1.5"
working_hours: "176"
allowances_pre_tax: true
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payroll.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, cfg.TaxBands, 3)
	require.NotNil(t, cfg.TaxBands[0].UpperBound)
	assert.True(t, cfg.TaxBands[0].UpperBound.Equal(decimal.NewFromInt(5100)))
	assert.True(t, cfg.TaxBands[2].IsUnbounded())
	assert.True(t, cfg.TaxBands[2].Rate.Equal(decimal.RequireFromString("0.37")))
	assert.True(t, cfg.NapsaCeiling.Equal(decimal.NewFromInt(8000)))
	assert.True(t, cfg.AllowancesPreTax)
	assert.Equal(t, 2026, cfg.EffectiveFrom.Year())
	assert.NoError(t, cfg.Validate())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "version: [1"},
		{"wrong version", "version: 2"},
		{"bad number", "version: 1\nnapsa_rate: five"},
		{"bad band", "version: 1\ntax_bands:\n  - upper_bound: abc\n    rate: \"0\""},
		{"bad date", "version: 1\neffective_from: 01/01/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, payroll.ErrConfigInvalid)
		})
	}
}

func TestProvider_Current(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := writeFile(t, sampleYAML)
		cfg, err := NewProvider(path).Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "file:"+path, cfg.ID)
		assert.Len(t, cfg.TaxBands, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewProvider(filepath.Join(t.TempDir(), "nope.yaml")).Current(context.Background())
		assert.ErrorIs(t, err, payroll.ErrConfigMissing)
	})

	t.Run("not yet effective", func(t *testing.T) {
		path := writeFile(t, "version: 1\neffective_from: \"2999-01-01\"\ntax_bands:\n  - rate: \"0.1\"\n")
		_, err := NewProvider(path).Current(context.Background())
		assert.ErrorIs(t, err, payroll.ErrConfigMissing)
	})

	t.Run("picks up edits", func(t *testing.T) {
		path := writeFile(t, sampleYAML)
		p := NewProvider(path)

		require.NoError(t, os.WriteFile(path, []byte("version: 1\ntax_bands:\n  - rate: \"0.1\"\nnapsa_ceiling: \"9000\"\n"), 0o600))
		cfg, err := p.Current(context.Background())
		require.NoError(t, err)
		assert.True(t, cfg.NapsaCeiling.Equal(decimal.NewFromInt(9000)))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewProvider(writeFile(t, sampleYAML)).Current(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
