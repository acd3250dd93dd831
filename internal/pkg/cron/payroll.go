package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

const PayrollRunJobName = "payroll_run"

// PayrollJobs runs payroll on a fixed interval for the current period.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	interval       time.Duration
	runOnStart     bool
}

func NewPayrollJobs(payrollService payroll.PayrollService, interval time.Duration, runOnStart bool) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		interval:       interval,
		runOnStart:     runOnStart,
	}
}

// RegisterJobs registers the payroll run. A zero interval leaves it unscheduled.
func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	if j.interval <= 0 {
		return
	}
	scheduler.AddJob(PayrollRunJobName, j.interval, j.runOnStart, j.RunPayroll)
}

// RunPayroll starts a run as the scheduler. The outcome is already audited by
// the run itself; a failure is returned so the scheduler logs it too.
func (j *PayrollJobs) RunPayroll(ctx context.Context) error {
	result := j.payrollService.Run(ctx, payroll.RunRequest{Actor: payroll.ActorScheduler})
	if !result.Success {
		return fmt.Errorf("payroll run for %s failed (%s): %s", result.Period, result.Code, result.Message)
	}
	return nil
}
