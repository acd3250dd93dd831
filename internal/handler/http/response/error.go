package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidWorkerType):
		BadRequest(w, "Invalid worker type", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunEmployeeNotFound):
		NotFound(w, "Employee is not part of this payroll run")
	case errors.Is(err, payroll.ErrConfigMissing):
		UnprocessableEntity(w, "CONFIG_MISSING", "Payroll configuration is not set up")
	case errors.Is(err, payroll.ErrConfigInvalid):
		UnprocessableEntity(w, "CONFIG_INVALID", "Payroll configuration is invalid")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Payroll period must be in YYYY-MM format", nil)
	case errors.Is(err, payroll.ErrRunInProgress):
		Conflict(w, "A payroll run for this period is already in progress")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
