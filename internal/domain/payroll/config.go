package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Validate checks the band table and statutory rates. Bands must ascend
// strictly, and only the last one may be unbounded.
func (c PayrollConfig) Validate() error {
	var errs validator.ValidationErrors

	if len(c.TaxBands) == 0 {
		errs = append(errs, validator.ValidationError{Field: "tax_bands", Message: "at least one band is required"})
	}

	previous := decimal.Zero
	for i, band := range c.TaxBands {
		field := fmt.Sprintf("tax_bands[%d]", i)
		if !isRate(band.Rate) {
			errs = append(errs, validator.ValidationError{Field: field + ".rate", Message: "must be between 0 and 1"})
		}

		last := i == len(c.TaxBands)-1
		if band.IsUnbounded() {
			if !last {
				errs = append(errs, validator.ValidationError{Field: field + ".upper_bound", Message: "only the last band may be unbounded"})
			}
			continue
		}
		if last {
			errs = append(errs, validator.ValidationError{Field: field + ".upper_bound", Message: "last band must be unbounded"})
		}
		if !band.UpperBound.GreaterThan(previous) {
			errs = append(errs, validator.ValidationError{Field: field + ".upper_bound", Message: "must be greater than the previous band"})
			continue
		}
		previous = *band.UpperBound
	}

	if !isRate(c.NapsaRate) {
		errs = append(errs, validator.ValidationError{Field: "napsa_rate", Message: "must be between 0 and 1"})
	}
	if c.NapsaCeiling.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "napsa_ceiling", Message: "must be non-negative"})
	}
	if !isRate(c.NhimaRate) {
		errs = append(errs, validator.ValidationError{Field: "nhima_rate", Message: "must be between 0 and 1"})
	}
	if c.OvertimeMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be non-negative"})
	}
	if c.WorkingHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "working_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isRate(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(one)
}
