package payroll

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

// LocalRunLocker serializes runs inside one process. Use the advisory lock
// repository when more than one instance can start runs.
type LocalRunLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalRunLocker() *LocalRunLocker {
	return &LocalRunLocker{held: make(map[string]struct{})}
}

func (l *LocalRunLocker) TryLock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, payroll.ErrRunInProgress
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
