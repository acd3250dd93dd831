package payroll

import "context"

type PayrollService interface {
	// Run executes a full payroll run. Failures are reported in the result,
	// never as an error.
	Run(ctx context.Context, req RunRequest) RunResult

	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	GetConfig(ctx context.Context) (PayrollConfigResponse, error)

	ListRuns(ctx context.Context, filter PayrollRunFilter) (ListPayrollRunResponse, error)
	GetRun(ctx context.Context, id string) (PayrollRunResponse, error)
	GetTransferFile(ctx context.Context, runID string) (FileResponse, error)
	GetPayslip(ctx context.Context, runID, employeeID string) (FileResponse, error)
}

// BankFileGenerator renders the bank transfer file of a run.
type BankFileGenerator interface {
	Render(run PayrollRun) ([]byte, error)
}

// PayslipRenderer renders one employee's payslip for a run.
type PayslipRenderer interface {
	Render(run PayrollRun, row PayrollRunEmployee) ([]byte, error)
}
