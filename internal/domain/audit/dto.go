package audit

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type AuditLogFilter struct {
	Actor  *string `json:"actor,omitempty"`
	Action *string `json:"action,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *AuditLogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Action != nil && validator.IsEmpty(*f.Action) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must not be blank"})
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AuditLogResponse struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

func NewAuditLogResponse(log AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        log.ID,
		Actor:     log.Actor,
		Action:    log.Action,
		Details:   log.Details,
		Timestamp: log.Timestamp.UTC().Format(time.RFC3339),
	}
}

type ListAuditLogResponse struct {
	Data       []AuditLogResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
