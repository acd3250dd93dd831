package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee holds the compensation inputs a payroll run reads for one worker.
// Hours and amounts are already finalized for the period being paid.
type Employee struct {
	ID             string
	FullName       string
	WorkerType     WorkerType
	Status         EmploymentStatus
	Salary         decimal.Decimal // annual, salaried and contractor
	HourlyRate     decimal.Decimal
	HoursWorked    decimal.Decimal
	Overtime       decimal.Decimal // hours
	Bonus          decimal.Decimal
	Allowances     decimal.Decimal
	Deductions     decimal.Decimal
	Reimbursements decimal.Decimal
	BankName       string
	AccountNumber  string
	BranchCode     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type WorkerType string

const (
	WorkerTypeSalaried   WorkerType = "salaried"
	WorkerTypeHourly     WorkerType = "hourly"
	WorkerTypeContractor WorkerType = "contractor"
)

func (t WorkerType) IsValid() bool {
	switch t {
	case WorkerTypeSalaried, WorkerTypeHourly, WorkerTypeContractor:
		return true
	}
	return false
}

// PaysStatutoryDeductions reports whether NAPSA, NHIMA and PAYE apply.
func (t WorkerType) PaysStatutoryDeductions() bool {
	return t != WorkerTypeContractor
}

// ParseWorkerType accepts any casing and surrounding whitespace. An empty
// value defaults to salaried.
func ParseWorkerType(s string) (WorkerType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return WorkerTypeSalaried, nil
	}
	t := WorkerType(s)
	if !t.IsValid() {
		return "", ErrInvalidWorkerType
	}
	return t, nil
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusSuspended  EmploymentStatus = "suspended"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusActive, EmploymentStatusInactive, EmploymentStatusSuspended, EmploymentStatusTerminated:
		return true
	}
	return false
}

func ParseEmploymentStatus(s string) (EmploymentStatus, error) {
	status := EmploymentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidEmploymentStatus
	}
	return status, nil
}

// StatusFromRecord reads a stored status. Unknown statuses count as inactive;
// ok reports whether the status was recognised.
func StatusFromRecord(s string) (status EmploymentStatus, ok bool) {
	status, err := ParseEmploymentStatus(s)
	if err != nil {
		return EmploymentStatusInactive, false
	}
	return status, true
}

func (e Employee) IsActive() bool {
	return e.Status == EmploymentStatusActive
}

func (e Employee) HasBankDetails() bool {
	return strings.TrimSpace(e.BankName) != "" && strings.TrimSpace(e.AccountNumber) != ""
}

// IsPayrollEligible reports whether the employee gets a row in a payroll run.
func (e Employee) IsPayrollEligible() bool {
	return e.IsActive() && e.HasBankDetails()
}

// Normalize clamps negative amounts to zero and clears the fields that do not
// apply to the worker type, so the calculator only sees meaningful input.
func (e Employee) Normalize() Employee {
	e.Salary = nonNegative(e.Salary)
	e.HourlyRate = nonNegative(e.HourlyRate)
	e.HoursWorked = nonNegative(e.HoursWorked)
	e.Overtime = nonNegative(e.Overtime)
	e.Bonus = nonNegative(e.Bonus)
	e.Allowances = nonNegative(e.Allowances)
	e.Deductions = nonNegative(e.Deductions)
	e.Reimbursements = nonNegative(e.Reimbursements)

	switch e.WorkerType {
	case WorkerTypeHourly:
		e.Salary = decimal.Zero
	default:
		e.HourlyRate = decimal.Zero
		e.HoursWorked = decimal.Zero
		e.Overtime = decimal.Zero
	}
	return e
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
