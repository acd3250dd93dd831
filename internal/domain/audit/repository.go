package audit

import "context"

type AuditLogRepository interface {
	Append(ctx context.Context, log AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]AuditLog, int64, error)
}
