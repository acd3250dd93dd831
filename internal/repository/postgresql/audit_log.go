package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type auditLogRepositoryImpl struct {
	db *database.DB
}

func NewAuditLogRepository(db *database.DB) audit.AuditLogRepository {
	return &auditLogRepositoryImpl{db: db}
}

// Append implements audit.AuditLogRepository. The table rejects updates and
// deletes, so entries are written once.
func (r *auditLogRepositoryImpl) Append(ctx context.Context, log audit.AuditLog) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO audit_logs (id, actor, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, log.ID, log.Actor, log.Action, log.Details, log.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

func (r *auditLogRepositoryImpl) List(ctx context.Context, filter audit.AuditLogFilter) ([]audit.AuditLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM audit_logs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Actor != nil {
		baseQuery += fmt.Sprintf(" AND actor = $%d", argIdx)
		args = append(args, *filter.Actor)
		argIdx++
	}
	if filter.Action != nil {
		baseQuery += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, *filter.Action)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT id, actor, action, details, created_at %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []audit.AuditLog
	for rows.Next() {
		var l audit.AuditLog
		if err := rows.Scan(&l.ID, &l.Actor, &l.Action, &l.Details, &l.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate audit logs: %w", err)
	}

	return logs, totalCount, nil
}
