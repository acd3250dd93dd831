package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	configProvider payroll.ConfigProvider
	employeeRepo   employee.EmployeeRepository
	runRepo        payroll.PayrollRunRepository
	locker         payroll.RunLocker
	bankFile       payroll.BankFileGenerator
	payslips       payroll.PayslipRenderer
	fileStorage    storage.FileStorage
	auditRecorder  audit.Recorder

	now   func() time.Time
	newID func() (string, error)
}

func NewPayrollService(
	configProvider payroll.ConfigProvider,
	employeeRepo employee.EmployeeRepository,
	runRepo payroll.PayrollRunRepository,
	locker payroll.RunLocker,
	fileStorage storage.FileStorage,
	auditRecorder audit.Recorder,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		configProvider: configProvider,
		employeeRepo:   employeeRepo,
		runRepo:        runRepo,
		locker:         locker,
		bankFile:       NewCSVBankFileGenerator(),
		payslips:       NewPDFPayslipRenderer(),
		fileStorage:    fileStorage,
		auditRecorder:  auditRecorder,
		now:            time.Now,
		newID:          newRunID,
	}
}

func newRunID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ========== CONFIG ==========

func (s *PayrollServiceImpl) GetConfig(ctx context.Context) (payroll.PayrollConfigResponse, error) {
	cfg, err := s.configProvider.Current(ctx)
	if err != nil {
		return payroll.PayrollConfigResponse{}, err
	}
	return payroll.NewPayrollConfigResponse(cfg), nil
}

// ========== PREVIEW ==========

// Preview computes one breakdown against the current configuration without
// persisting or auditing anything.
func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewRequest) (payroll.PreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PreviewResponse{}, err
	}

	cfg, err := s.configProvider.Current(ctx)
	if err != nil {
		return payroll.PreviewResponse{}, err
	}
	if err := cfg.Validate(); err != nil {
		return payroll.PreviewResponse{}, fmt.Errorf("%w: %v", payroll.ErrConfigInvalid, err)
	}

	emp := req.ToEmployee()
	return payroll.PreviewResponse{
		WorkerType:       string(emp.WorkerType),
		PayrollBreakdown: Compute(emp, cfg),
	}, nil
}

// ========== RUN HISTORY ==========

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.PayrollRunFilter) (payroll.ListPayrollRunResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRunResponse{}, err
	}

	runs, total, err := s.runRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRunResponse{}, fmt.Errorf("failed to list payroll runs: %w", err)
	}

	data := make([]payroll.PayrollRunResponse, 0, len(runs))
	for _, run := range runs {
		data = append(data, payroll.NewPayrollRunResponse(run))
	}

	return payroll.ListPayrollRunResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	return payroll.NewPayrollRunResponse(run), nil
}

// GetTransferFile serves the stored transfer file. If the stored copy is gone
// the file is rendered again from the persisted run, which yields the same bytes.
func (s *PayrollServiceImpl) GetTransferFile(ctx context.Context, runID string) (payroll.FileResponse, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return payroll.FileResponse{}, err
	}

	content, err := s.readStored(ctx, run.ACHFileName)
	if errors.Is(err, storage.ErrFileNotFound) {
		slog.Warn("Transfer file missing from storage, re-rendering", "run_id", run.ID, "path", run.ACHFileName)
		content, err = s.bankFile.Render(run)
	}
	if err != nil {
		return payroll.FileResponse{}, fmt.Errorf("failed to load transfer file: %w", err)
	}

	return payroll.FileResponse{
		FileName:    fmt.Sprintf("ach-%s-%s.csv", run.Period, run.ID),
		ContentType: payroll.TransferFileContentType,
		Content:     content,
	}, nil
}

func (s *PayrollServiceImpl) readStored(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, storage.ErrFileNotFound
	}
	rc, err := s.fileStorage.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, runID, employeeID string) (payroll.FileResponse, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return payroll.FileResponse{}, err
	}

	row, ok := run.Employee(employeeID)
	if !ok {
		return payroll.FileResponse{}, payroll.ErrRunEmployeeNotFound
	}

	content, err := s.payslips.Render(run, row)
	if err != nil {
		return payroll.FileResponse{}, err
	}

	return payroll.FileResponse{
		FileName:    payslipFileName(run, employeeID),
		ContentType: payroll.PayslipContentType,
		Content:     content,
	}, nil
}
