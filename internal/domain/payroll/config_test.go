package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bound(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func validConfig() PayrollConfig {
	return PayrollConfig{
		TaxBands: []TaxBand{
			{UpperBound: bound("5100"), Rate: decimal.Zero},
			{UpperBound: bound("7100"), Rate: decimal.RequireFromString("0.20")},
			{UpperBound: bound("9200"), Rate: decimal.RequireFromString("0.30")},
			{Rate: decimal.RequireFromString("0.37")},
		},
		NapsaRate:          decimal.RequireFromString("0.05"),
		NapsaCeiling:       decimal.RequireFromString("8000"),
		NhimaRate:          decimal.RequireFromString("0.01"),
		OvertimeMultiplier: decimal.RequireFromString("1.5"),
		WorkingHours:       decimal.RequireFromString("176"),
	}
}

func TestPayrollConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *PayrollConfig)
		wantField string
	}{
		{"valid", func(c *PayrollConfig) {}, ""},
		{"no bands", func(c *PayrollConfig) { c.TaxBands = nil }, "tax_bands"},
		{"last band bounded", func(c *PayrollConfig) {
			c.TaxBands[3].UpperBound = bound("20000")
		}, "tax_bands[3].upper_bound"},
		{"unbounded band in the middle", func(c *PayrollConfig) {
			c.TaxBands[1].UpperBound = nil
		}, "tax_bands[1].upper_bound"},
		{"bands not increasing", func(c *PayrollConfig) {
			c.TaxBands[2].UpperBound = bound("7100")
		}, "tax_bands[2].upper_bound"},
		{"negative band rate", func(c *PayrollConfig) {
			c.TaxBands[1].Rate = decimal.RequireFromString("-0.1")
		}, "tax_bands[1].rate"},
		{"napsa rate above one", func(c *PayrollConfig) {
			c.NapsaRate = decimal.RequireFromString("1.5")
		}, "napsa_rate"},
		{"negative ceiling", func(c *PayrollConfig) {
			c.NapsaCeiling = decimal.RequireFromString("-1")
		}, "napsa_ceiling"},
		{"negative overtime multiplier", func(c *PayrollConfig) {
			c.OvertimeMultiplier = decimal.RequireFromString("-1")
		}, "overtime_multiplier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.wantField)
		})
	}
}

func TestSnapshot_IsolatedFromCaller(t *testing.T) {
	cfg := validConfig()
	snap := NewSnapshot(cfg, nil, time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC))

	cfg.TaxBands[0].Rate = decimal.NewFromInt(1)
	got := snap.Config()
	assert.True(t, got.TaxBands[0].Rate.IsZero())

	got.TaxBands[0].Rate = decimal.NewFromInt(1)
	assert.True(t, snap.Config().TaxBands[0].Rate.IsZero())
}
