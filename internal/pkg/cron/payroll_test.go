package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	payroll.PayrollService

	mu       sync.Mutex
	requests []payroll.RunRequest
	result   payroll.RunResult
}

func (f *fakePayrollService) Run(ctx context.Context, req payroll.RunRequest) payroll.RunResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result
}

func (f *fakePayrollService) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestPayrollJobs_RunPayroll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{result: payroll.RunResult{Success: true}}
		err := NewPayrollJobs(svc, time.Hour, false).RunPayroll(context.Background())
		require.NoError(t, err)
		require.Len(t, svc.requests, 1)
		assert.Equal(t, payroll.ActorScheduler, svc.requests[0].Actor)
		assert.Empty(t, svc.requests[0].Period)
	})

	t.Run("failure is reported", func(t *testing.T) {
		svc := &fakePayrollService{result: payroll.RunResult{
			Success: false,
			Period:  "2026-10",
			Code:    payroll.RunErrorNoEligibleEmployees,
			Message: "No eligible employees to pay",
		}}
		err := NewPayrollJobs(svc, time.Hour, false).RunPayroll(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2026-10")
		assert.Contains(t, err.Error(), string(payroll.RunErrorNoEligibleEmployees))
	})
}

func TestPayrollJobs_RegisterJobs(t *testing.T) {
	t.Run("zero interval disables", func(t *testing.T) {
		s := NewScheduler()
		NewPayrollJobs(&fakePayrollService{}, 0, true).RegisterJobs(s)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("run once through scheduler", func(t *testing.T) {
		svc := &fakePayrollService{result: payroll.RunResult{Success: true}}
		s := NewScheduler()
		NewPayrollJobs(svc, time.Hour, false).RegisterJobs(s)
		require.Equal(t, 1, s.Len())

		s.RunOnce(context.Background())
		assert.Equal(t, 1, svc.calls())
	})
}

func TestScheduler_RunOnStart(t *testing.T) {
	svc := &fakePayrollService{result: payroll.RunResult{Success: true}}
	s := NewScheduler()
	NewPayrollJobs(svc, time.Hour, true).RegisterJobs(s)

	s.Start()
	assert.Eventually(t, func() bool { return svc.calls() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()
	assert.Equal(t, 1, svc.calls())
}

func TestScheduler_NoRunOnStart(t *testing.T) {
	svc := &fakePayrollService{result: payroll.RunResult{Success: true}}
	s := NewScheduler()
	NewPayrollJobs(svc, time.Hour, false).RegisterJobs(s)

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()
	assert.Equal(t, 0, svc.calls())
}
