package audit

import "time"

// AuditLog is an append-only record of an action taken against payroll.
type AuditLog struct {
	ID        string
	Actor     string
	Action    string
	Details   string
	Timestamp time.Time
}
