package payroll

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const (
	msgConfigMissing = "Payroll configuration is not set up"
	msgConfigInvalid = "Payroll configuration is invalid"
	msgNoEligible    = "No eligible employees to pay"
	msgInProgress    = "A payroll run for this period is already in progress"
	msgInvalidPeriod = "Payroll period must be in YYYY-MM format"
	msgUnexpected    = "Payroll run failed due to an internal error"
	msgRunCompleted  = "Payroll run completed for %s: %d employees paid, %d skipped"
)

// runOutcome is what a run produced, successful or not. skipped is reported
// even when the run fails after eligibility filtering.
type runOutcome struct {
	run     payroll.PayrollRun
	file    []byte
	skipped []string
}

// Run executes one payroll run end to end. Every attempt ends with exactly
// one audit entry, and no error or panic escapes to the caller.
func (s *PayrollServiceImpl) Run(ctx context.Context, req payroll.RunRequest) payroll.RunResult {
	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		actor = payroll.ActorUnknown
	}
	period := strings.TrimSpace(req.Period)
	if period == "" {
		period = s.now().Format(payroll.PeriodLayout)
	}

	out, err := s.safeExecute(ctx, actor, period)

	// audit even if the caller has gone away
	auditCtx := context.WithoutCancel(ctx)
	if err != nil {
		runErr := asRunError(err)
		slog.Error("Payroll run failed",
			"actor", actor,
			"period", period,
			"code", runErr.Code,
			"error", err,
		)
		s.auditRecorder.Record(auditCtx, actor, payroll.AuditActionRunFailed, failureDetails(period, runErr, out.skipped), s.now())
		return payroll.RunResult{
			Success:            false,
			Message:            runErr.Message,
			Code:               runErr.Code,
			Period:             period,
			SkippedCount:       len(out.skipped),
			SkippedEmployeeIDs: nonNilIDs(out.skipped),
		}
	}

	slog.Info("Payroll run completed",
		"actor", actor,
		"run_id", out.run.ID,
		"period", period,
		"employee_count", out.run.EmployeeCount,
		"skipped_count", out.run.SkippedCount,
		"total_amount", out.run.TotalAmount.StringFixed(2),
	)
	s.auditRecorder.Record(auditCtx, actor, payroll.AuditActionRunSucceeded, successDetails(out), s.now())

	return payroll.RunResult{
		Success:            true,
		Message:            fmt.Sprintf(msgRunCompleted, period, out.run.EmployeeCount, out.run.SkippedCount),
		PayrollRunID:       out.run.ID,
		Period:             period,
		FileContent:        base64.StdEncoding.EncodeToString(out.file),
		ContentType:        payroll.TransferFileContentType,
		EmployeeCount:      out.run.EmployeeCount,
		SkippedCount:       out.run.SkippedCount,
		SkippedEmployeeIDs: nonNilIDs(out.skipped),
	}
}

// safeExecute converts a panic anywhere in the run into an unexpected failure.
func (s *PayrollServiceImpl) safeExecute(ctx context.Context, actor, period string) (out runOutcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = payroll.NewRunError(payroll.RunErrorUnexpected, msgUnexpected, fmt.Errorf("panic during payroll run: %v", p))
		}
	}()
	return s.execute(ctx, actor, period)
}

func (s *PayrollServiceImpl) execute(ctx context.Context, actor, period string) (runOutcome, error) {
	if !validator.IsValidPeriod(period) {
		return runOutcome{}, payroll.NewRunError(payroll.RunErrorInvalidPeriod, msgInvalidPeriod, payroll.ErrInvalidPeriod)
	}

	unlock, err := s.locker.TryLock(ctx, runLockKey(period))
	if err != nil {
		if errors.Is(err, payroll.ErrRunInProgress) {
			return runOutcome{}, payroll.NewRunError(payroll.RunErrorInProgress, msgInProgress, err)
		}
		return runOutcome{}, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	defer unlock()

	snap, err := s.takeSnapshot(ctx)
	if err != nil {
		return runOutcome{}, err
	}
	cfg := snap.Config()

	eligible, skipped := selectEligible(snap.Employees())
	if len(eligible) == 0 {
		return runOutcome{skipped: skipped}, payroll.NewRunError(payroll.RunErrorNoEligibleEmployees, msgNoEligible, payroll.ErrNoEligibleEmployees)
	}

	id, err := s.newID()
	if err != nil {
		return runOutcome{skipped: skipped}, fmt.Errorf("failed to generate run id: %w", err)
	}

	run := payroll.PayrollRun{
		ID:        id,
		Period:    period,
		RunDate:   snap.TakenAt(),
		CreatedBy: actor,
		Employees: make([]payroll.PayrollRunEmployee, 0, len(eligible)),
	}
	for _, emp := range eligible {
		b := Compute(emp, cfg)
		run.Employees = append(run.Employees, newRunEmployee(emp, b))
		run.TotalAmount = run.TotalAmount.Add(b.NetPay)
		run.TotalGross = run.TotalGross.Add(b.GrossPay)
		run.TotalDeductions = run.TotalDeductions.Add(b.TotalDeductions)
		run.TotalEmployerNapsa = run.TotalEmployerNapsa.Add(b.EmployerNapsaContribution)
	}
	run.EmployeeCount = len(run.Employees)
	run.SkippedCount = len(skipped)
	run.ACHFileName = transferFileName(run)

	file, err := s.bankFile.Render(run)
	if err != nil {
		return runOutcome{skipped: skipped}, err
	}

	if _, err := s.fileStorage.Upload(ctx, bytes.NewReader(file), run.ACHFileName, payroll.TransferFileContentType); err != nil {
		return runOutcome{skipped: skipped}, fmt.Errorf("failed to store transfer file: %w", err)
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		if delErr := s.fileStorage.Delete(context.WithoutCancel(ctx), run.ACHFileName); delErr != nil {
			slog.Error("Failed to remove orphaned transfer file", "path", run.ACHFileName, "error", delErr)
		}
		return runOutcome{skipped: skipped}, fmt.Errorf("failed to persist payroll run: %w", err)
	}

	return runOutcome{run: run, file: file, skipped: skipped}, nil
}

// takeSnapshot reads the configuration and the employee set once, concurrently.
// A missing or invalid configuration wins over an employee load failure.
func (s *PayrollServiceImpl) takeSnapshot(ctx context.Context) (payroll.Snapshot, error) {
	var (
		cfg       payroll.PayrollConfig
		employees []employee.Employee
		cfgErr    error
		empErr    error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfgErr = recoverPanic(func() error {
			var err error
			cfg, err = s.loadConfig(gctx)
			return err
		})()
		return cfgErr
	})
	g.Go(func() error {
		empErr = recoverPanic(func() error {
			var err error
			employees, err = s.employeeRepo.ListForPayroll(gctx)
			if err != nil {
				return fmt.Errorf("failed to load employees: %w", err)
			}
			return nil
		})()
		return empErr
	})
	_ = g.Wait()

	// a cancelled config read after an employee failure is not a config failure
	var runErr *payroll.RunError
	switch {
	case errors.As(cfgErr, &runErr):
		return payroll.Snapshot{}, cfgErr
	case empErr != nil:
		return payroll.Snapshot{}, empErr
	case cfgErr != nil:
		return payroll.Snapshot{}, cfgErr
	}
	return payroll.NewSnapshot(cfg, employees, s.now()), nil
}

// loadConfig reads and validates the configuration in force. Missing and
// invalid configurations are fatal run errors.
func (s *PayrollServiceImpl) loadConfig(ctx context.Context) (payroll.PayrollConfig, error) {
	cfg, err := s.configProvider.Current(ctx)
	switch {
	case errors.Is(err, payroll.ErrConfigMissing):
		return payroll.PayrollConfig{}, payroll.NewRunError(payroll.RunErrorConfigMissing, msgConfigMissing, err)
	case errors.Is(err, payroll.ErrConfigInvalid):
		return payroll.PayrollConfig{}, payroll.NewRunError(payroll.RunErrorConfigInvalid, msgConfigInvalid, err)
	case err != nil:
		return payroll.PayrollConfig{}, fmt.Errorf("failed to load payroll configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return payroll.PayrollConfig{}, payroll.NewRunError(payroll.RunErrorConfigInvalid, msgConfigInvalid, fmt.Errorf("%w: %v", payroll.ErrConfigInvalid, err))
	}
	return cfg, nil
}

// recoverPanic turns a panic in a snapshot goroutine into an error.
// safeExecute only covers the calling goroutine.
func recoverPanic(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic while loading snapshot: %v", p)
			}
		}()
		return fn()
	}
}

// selectEligible keeps active employees with bank details, in input order.
// Active employees without bank details are returned as skipped.
func selectEligible(employees []employee.Employee) (eligible []employee.Employee, skipped []string) {
	for _, emp := range employees {
		if !emp.IsActive() {
			continue
		}
		if !emp.HasBankDetails() {
			skipped = append(skipped, emp.ID)
			continue
		}
		eligible = append(eligible, emp)
	}
	return eligible, skipped
}

func newRunEmployee(emp employee.Employee, b payroll.PayrollBreakdown) payroll.PayrollRunEmployee {
	row := payroll.PayrollRunEmployee{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.FullName,
		WorkerType:       emp.WorkerType,
		BankName:         strings.TrimSpace(emp.BankName),
		AccountNumber:    strings.TrimSpace(emp.AccountNumber),
		PayrollBreakdown: b,
	}
	if emp.BranchCode != nil {
		row.BranchCode = strings.TrimSpace(*emp.BranchCode)
	}
	return row
}

func runLockKey(period string) string {
	return "payroll-run:" + period
}

// asRunError classifies any failure. Errors that are not already a RunError
// are unexpected and get the generic caller message.
func asRunError(err error) *payroll.RunError {
	var runErr *payroll.RunError
	if errors.As(err, &runErr) {
		return runErr
	}
	return payroll.NewRunError(payroll.RunErrorUnexpected, msgUnexpected, err)
}

func failureDetails(period string, runErr *payroll.RunError, skipped []string) string {
	cause := runErr.Message
	if runErr.Err != nil {
		cause = runErr.Err.Error()
	}
	return fmt.Sprintf("period=%s code=%s skipped=%d skipped_ids=[%s] error=%s",
		period, runErr.Code, len(skipped), strings.Join(skipped, ","), cause)
}

func successDetails(out runOutcome) string {
	return fmt.Sprintf("run_id=%s period=%s employees=%d skipped=%d skipped_ids=[%s] total_amount=%s file=%s",
		out.run.ID,
		out.run.Period,
		out.run.EmployeeCount,
		out.run.SkippedCount,
		strings.Join(out.skipped, ","),
		out.run.TotalAmount.StringFixed(2),
		out.run.ACHFileName,
	)
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
