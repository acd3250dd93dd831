package payroll

import (
	"context"
)

// ConfigProvider supplies the statutory configuration in force. It returns
// ErrConfigMissing when none exists.
type ConfigProvider interface {
	Current(ctx context.Context) (PayrollConfig, error)
}

// PayrollConfigRepository stores configuration versions. The newest version
// whose effective date has passed is current.
type PayrollConfigRepository interface {
	ConfigProvider
	Create(ctx context.Context, cfg PayrollConfig) (PayrollConfig, error)
}

type PayrollRunRepository interface {
	// Create stores the run header and all employee rows atomically.
	Create(ctx context.Context, run PayrollRun) error
	GetByID(ctx context.Context, id string) (PayrollRun, error)
	// List returns run headers without employee rows.
	List(ctx context.Context, filter PayrollRunFilter) ([]PayrollRun, int64, error)
}

// RunLocker serializes runs per key. TryLock fails with ErrRunInProgress when
// the key is already held.
type RunLocker interface {
	TryLock(ctx context.Context, key string) (unlock func(), err error)
}
