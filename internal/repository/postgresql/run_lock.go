package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

// advisoryRunLocker holds a session-level advisory lock on a dedicated pool
// connection for the duration of a run, so every instance sharing the
// database sees the same lock.
type advisoryRunLocker struct {
	db *database.DB
}

func NewAdvisoryRunLocker(db *database.DB) payroll.RunLocker {
	return &advisoryRunLocker{db: db}
}

func (l *advisoryRunLocker) TryLock(ctx context.Context, key string) (func(), error) {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection for run lock: %w", err)
	}

	var locked bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock(hashtext($1))`, key).Scan(&locked); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to take advisory lock: %w", err)
	}
	if !locked {
		conn.Release()
		return nil, payroll.ErrRunInProgress
	}

	return func() {
		unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := conn.Exec(unlockCtx, `SELECT pg_advisory_unlock(hashtext($1))`, key); err != nil {
			// closing the session drops every lock it holds
			slog.Error("Failed to release advisory lock, closing connection", "key", key, "error", err)
			_ = conn.Conn().Close(unlockCtx)
		}
		conn.Release()
	}, nil
}
