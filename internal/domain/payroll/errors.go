package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrConfigMissing       = errors.New("payroll configuration not found")
	ErrConfigInvalid       = errors.New("payroll configuration is invalid")
	ErrNoEligibleEmployees = errors.New("no eligible employees for payroll")
	ErrRunInProgress       = errors.New("a payroll run for this period is already in progress")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
	ErrPayrollRunNotFound  = errors.New("payroll run not found")
	ErrRunEmployeeNotFound = errors.New("employee not found in payroll run")
)

type RunErrorCode string

const (
	RunErrorConfigMissing       RunErrorCode = "CONFIG_MISSING"
	RunErrorConfigInvalid       RunErrorCode = "CONFIG_INVALID"
	RunErrorNoEligibleEmployees RunErrorCode = "NO_ELIGIBLE_EMPLOYEES"
	RunErrorInProgress          RunErrorCode = "RUN_IN_PROGRESS"
	RunErrorInvalidPeriod       RunErrorCode = "INVALID_PERIOD"
	RunErrorUnexpected          RunErrorCode = "UNEXPECTED"
)

// RunError is a run failure. Message is safe to show the caller; Err carries
// the cause for the audit trail.
type RunError struct {
	Code    RunErrorCode
	Message string
	Err     error
}

func (e *RunError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func NewRunError(code RunErrorCode, message string, err error) *RunError {
	return &RunError{Code: code, Message: message, Err: err}
}
