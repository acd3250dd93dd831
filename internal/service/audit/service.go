package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/google/uuid"
)

type AuditServiceImpl struct {
	auditRepo audit.AuditLogRepository
}

func NewAuditService(auditRepo audit.AuditLogRepository) audit.AuditService {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// Record appends one entry. It never returns or panics: a failed write is
// logged and dropped so the audited operation's outcome stands.
func (s *AuditServiceImpl) Record(ctx context.Context, actor, action, details string, timestamp time.Time) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("Audit write panicked", "actor", actor, "action", action, "panic", fmt.Sprint(p))
		}
	}()

	id, err := uuid.NewV7()
	if err != nil {
		slog.Error("Audit write failed", "actor", actor, "action", action, "error", err)
		return
	}

	entry := audit.AuditLog{
		ID:        id.String(),
		Actor:     actor,
		Action:    action,
		Details:   details,
		Timestamp: timestamp.UTC(),
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		slog.Error("Audit write failed",
			"actor", actor,
			"action", action,
			"details", details,
			"error", err,
		)
	}
}

func (s *AuditServiceImpl) List(ctx context.Context, filter audit.AuditLogFilter) (audit.ListAuditLogResponse, error) {
	if err := filter.Validate(); err != nil {
		return audit.ListAuditLogResponse{}, err
	}

	logs, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return audit.ListAuditLogResponse{}, fmt.Errorf("failed to list audit logs: %w", err)
	}

	data := make([]audit.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		data = append(data, audit.NewAuditLogResponse(l))
	}

	return audit.ListAuditLogResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
