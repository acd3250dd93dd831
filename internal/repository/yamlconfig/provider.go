package yamlconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a statutory configuration. Amounts are strings
// so they parse straight into decimals without a float round trip.
type File struct {
	Version            int        `yaml:"version"`
	EffectiveFrom      string     `yaml:"effective_from"`
	TaxBands           []bandFile `yaml:"tax_bands"`
	NapsaRate          string     `yaml:"napsa_rate"`
	NapsaCeiling       string     `yaml:"napsa_ceiling"`
	NhimaRate          string     `yaml:"nhima_rate"`
	OvertimeMultiplier string     `yaml:"overtime_multiplier"`
	WorkingHours       string     `yaml:"working_hours"`
	AllowancesPreTax   bool       `yaml:"allowances_pre_tax"`
}

type bandFile struct {
	// empty means unbounded
	UpperBound string `yaml:"upper_bound"`
	Rate       string `yaml:"rate"`
}

// Parse decodes a YAML document into a PayrollConfig. The result is not
// validated against the band rules; callers run PayrollConfig.Validate.
func Parse(b []byte) (payroll.PayrollConfig, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return payroll.PayrollConfig{}, fmt.Errorf("%w: %v", payroll.ErrConfigInvalid, err)
	}
	if f.Version != 1 {
		return payroll.PayrollConfig{}, fmt.Errorf("%w: unsupported version %d", payroll.ErrConfigInvalid, f.Version)
	}

	var (
		cfg  payroll.PayrollConfig
		errs validator.ValidationErrors
	)

	num := func(field, raw string) decimal.Decimal {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a number"})
			return decimal.Zero
		}
		return d
	}

	for i, band := range f.TaxBands {
		field := fmt.Sprintf("tax_bands[%d]", i)
		tb := payroll.TaxBand{Rate: num(field+".rate", band.Rate)}
		if strings.TrimSpace(band.UpperBound) != "" {
			upper := num(field+".upper_bound", band.UpperBound)
			tb.UpperBound = &upper
		}
		cfg.TaxBands = append(cfg.TaxBands, tb)
	}
	cfg.NapsaRate = num("napsa_rate", f.NapsaRate)
	cfg.NapsaCeiling = num("napsa_ceiling", f.NapsaCeiling)
	cfg.NhimaRate = num("nhima_rate", f.NhimaRate)
	cfg.OvertimeMultiplier = num("overtime_multiplier", f.OvertimeMultiplier)
	cfg.WorkingHours = num("working_hours", f.WorkingHours)
	cfg.AllowancesPreTax = f.AllowancesPreTax

	if f.EffectiveFrom != "" {
		date, ok := validator.IsValidDate(f.EffectiveFrom)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be in YYYY-MM-DD format"})
		}
		cfg.EffectiveFrom = date
	}

	if len(errs) > 0 {
		return payroll.PayrollConfig{}, fmt.Errorf("%w: %v", payroll.ErrConfigInvalid, errs)
	}
	return cfg, nil
}

// Provider serves the configuration from a YAML file. The file is read on
// every call so edits apply to the next run without a restart.
type Provider struct {
	path string
}

func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

func (p *Provider) Current(ctx context.Context) (payroll.PayrollConfig, error) {
	if err := ctx.Err(); err != nil {
		return payroll.PayrollConfig{}, err
	}

	b, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return payroll.PayrollConfig{}, payroll.ErrConfigMissing
		}
		return payroll.PayrollConfig{}, fmt.Errorf("failed to read payroll config file: %w", err)
	}

	cfg, err := Parse(b)
	if err != nil {
		return payroll.PayrollConfig{}, err
	}
	if cfg.EffectiveFrom.After(time.Now()) {
		return payroll.PayrollConfig{}, payroll.ErrConfigMissing
	}
	cfg.ID = "file:" + p.path
	return cfg, nil
}
