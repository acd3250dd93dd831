package audit

import (
	"context"
	"time"
)

// Recorder appends audit entries. Implementations must not fail the caller:
// write errors are logged and dropped.
type Recorder interface {
	Record(ctx context.Context, actor, action, details string, timestamp time.Time)
}

type AuditService interface {
	Recorder
	List(ctx context.Context, filter AuditLogFilter) (ListAuditLogResponse, error)
}
