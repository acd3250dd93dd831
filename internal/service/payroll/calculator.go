package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Compute returns the gross-to-net breakdown of one employee under cfg.
// Intermediates keep full precision; each output field is rounded once.
func Compute(emp employee.Employee, cfg payroll.PayrollConfig) payroll.PayrollBreakdown {
	emp = emp.Normalize()

	basePay, overtimePay := earnings(emp, cfg)
	gross := basePay.Add(overtimePay).Add(emp.Bonus).Add(emp.Allowances)

	var tax, napsa, nhima decimal.Decimal
	if emp.WorkerType.PaysStatutoryDeductions() {
		napsa = NapsaContribution(gross, cfg)
		nhima = gross.Mul(nonNegative(cfg.NhimaRate))

		taxable := gross
		if cfg.AllowancesPreTax {
			taxable = nonNegative(taxable.Sub(emp.Allowances))
		}
		tax = ProgressiveTax(taxable, cfg.TaxBands)
	}

	b := payroll.PayrollBreakdown{
		GrossPay:                  RoundMoney(gross),
		TaxDeduction:              RoundMoney(tax),
		EmployeeNapsaDeduction:    RoundMoney(napsa),
		EmployerNapsaContribution: RoundMoney(napsa),
		EmployeeNhimaDeduction:    RoundMoney(nhima),
		OtherDeductions:           RoundMoney(emp.Deductions),
		Reimbursements:            RoundMoney(emp.Reimbursements),
	}
	b.TotalDeductions = b.TaxDeduction.
		Add(b.EmployeeNapsaDeduction).
		Add(b.EmployeeNhimaDeduction).
		Add(b.OtherDeductions)
	b.NetPay = nonNegative(b.GrossPay.Add(b.Reimbursements).Sub(b.TotalDeductions))

	return b
}

// earnings returns the monthly base pay and the overtime pay. Overtime only
// applies to hourly workers.
func earnings(emp employee.Employee, cfg payroll.PayrollConfig) (decimal.Decimal, decimal.Decimal) {
	switch emp.WorkerType {
	case employee.WorkerTypeHourly:
		base := emp.HoursWorked.Mul(emp.HourlyRate)
		overtime := emp.Overtime.Mul(emp.HourlyRate).Mul(nonNegative(cfg.OvertimeMultiplier))
		return base, overtime
	default:
		return emp.Salary.Div(monthsPerYear), decimal.Zero
	}
}

// NapsaContribution is the employee share of NAPSA: the rate applied to gross
// pay capped at the ceiling.
func NapsaContribution(gross decimal.Decimal, cfg payroll.PayrollConfig) decimal.Decimal {
	base := decimal.Min(nonNegative(gross), nonNegative(cfg.NapsaCeiling))
	return base.Mul(nonNegative(cfg.NapsaRate))
}

// ProgressiveTax walks the bands in order, taxing each (previous, upper] slice
// of the taxable amount at the band rate.
func ProgressiveTax(taxable decimal.Decimal, bands []payroll.TaxBand) decimal.Decimal {
	tax := decimal.Zero
	if !taxable.IsPositive() {
		return tax
	}

	lower := decimal.Zero
	for _, band := range bands {
		rate := nonNegative(band.Rate)
		if band.IsUnbounded() {
			return tax.Add(taxable.Sub(lower).Mul(rate))
		}

		upper := *band.UpperBound
		if !upper.GreaterThan(lower) {
			continue
		}
		if taxable.LessThanOrEqual(upper) {
			return tax.Add(taxable.Sub(lower).Mul(rate))
		}
		tax = tax.Add(upper.Sub(lower).Mul(rate))
		lower = upper
	}
	return tax
}

// RoundMoney rounds to two decimal places, half away from zero. Amounts are
// never negative here, so this is half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
