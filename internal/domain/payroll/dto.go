package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CONFIG DTOs ==========

type PayrollConfigResponse struct {
	ID                 string          `json:"id,omitempty"`
	TaxBands           []TaxBand       `json:"tax_bands"`
	NapsaRate          decimal.Decimal `json:"napsa_rate"`
	NapsaCeiling       decimal.Decimal `json:"napsa_ceiling"`
	NhimaRate          decimal.Decimal `json:"nhima_rate"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	WorkingHours       decimal.Decimal `json:"working_hours"`
	AllowancesPreTax   bool            `json:"allowances_pre_tax"`
	EffectiveFrom      *string         `json:"effective_from,omitempty"`
}

func NewPayrollConfigResponse(cfg PayrollConfig) PayrollConfigResponse {
	resp := PayrollConfigResponse{
		ID:                 cfg.ID,
		TaxBands:           cfg.TaxBands,
		NapsaRate:          cfg.NapsaRate,
		NapsaCeiling:       cfg.NapsaCeiling,
		NhimaRate:          cfg.NhimaRate,
		OvertimeMultiplier: cfg.OvertimeMultiplier,
		WorkingHours:       cfg.WorkingHours,
		AllowancesPreTax:   cfg.AllowancesPreTax,
	}
	if !cfg.EffectiveFrom.IsZero() {
		s := cfg.EffectiveFrom.Format("2006-01-02")
		resp.EffectiveFrom = &s
	}
	return resp
}

// ========== PREVIEW DTOs ==========

type PreviewRequest struct {
	WorkerType     string          `json:"worker_type"`
	Salary         decimal.Decimal `json:"salary"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	HoursWorked    decimal.Decimal `json:"hours_worked"`
	Overtime       decimal.Decimal `json:"overtime"`
	Bonus          decimal.Decimal `json:"bonus"`
	Allowances     decimal.Decimal `json:"allowances"`
	Deductions     decimal.Decimal `json:"deductions"`
	Reimbursements decimal.Decimal `json:"reimbursements"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := employee.ParseWorkerType(r.WorkerType); err != nil {
		errs = append(errs, validator.ValidationError{Field: "worker_type", Message: "must be 'salaried', 'hourly' or 'contractor'"})
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"salary", r.Salary},
		{"hourly_rate", r.HourlyRate},
		{"hours_worked", r.HoursWorked},
		{"overtime", r.Overtime},
		{"bonus", r.Bonus},
		{"allowances", r.Allowances},
		{"deductions", r.Deductions},
		{"reimbursements", r.Reimbursements},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEmployee builds the synthetic employee a preview computes for.
func (r PreviewRequest) ToEmployee() employee.Employee {
	workerType, _ := employee.ParseWorkerType(r.WorkerType)
	return employee.Employee{
		WorkerType:     workerType,
		Status:         employee.EmploymentStatusActive,
		Salary:         r.Salary,
		HourlyRate:     r.HourlyRate,
		HoursWorked:    r.HoursWorked,
		Overtime:       r.Overtime,
		Bonus:          r.Bonus,
		Allowances:     r.Allowances,
		Deductions:     r.Deductions,
		Reimbursements: r.Reimbursements,
	}
}

type PreviewResponse struct {
	WorkerType string `json:"worker_type"`
	PayrollBreakdown
}

// ========== RUN DTOs ==========

type PayrollRunFilter struct {
	Period    *string `json:"period,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
}

func (f *PayrollRunFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Period != nil && !validator.IsValidPeriod(*f.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRunEmployeeResponse struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	WorkerType    string `json:"worker_type"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	BranchCode    string `json:"branch_code,omitempty"`
	PayrollBreakdown
}

type PayrollRunResponse struct {
	ID                 string                       `json:"id"`
	Period             string                       `json:"period"`
	RunDate            string                       `json:"run_date"`
	EmployeeCount      int                          `json:"employee_count"`
	SkippedCount       int                          `json:"skipped_count"`
	TotalAmount        decimal.Decimal              `json:"total_amount"`
	TotalGross         decimal.Decimal              `json:"total_gross"`
	TotalDeductions    decimal.Decimal              `json:"total_deductions"`
	TotalEmployerNapsa decimal.Decimal              `json:"total_employer_napsa"`
	ACHFileName        string                       `json:"ach_file_name"`
	CreatedBy          string                       `json:"created_by"`
	Employees          []PayrollRunEmployeeResponse `json:"employees,omitempty"`
}

func NewPayrollRunResponse(run PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:                 run.ID,
		Period:             run.Period,
		RunDate:            run.RunDate.UTC().Format(time.RFC3339),
		EmployeeCount:      run.EmployeeCount,
		SkippedCount:       run.SkippedCount,
		TotalAmount:        run.TotalAmount,
		TotalGross:         run.TotalGross,
		TotalDeductions:    run.TotalDeductions,
		TotalEmployerNapsa: run.TotalEmployerNapsa,
		ACHFileName:        run.ACHFileName,
		CreatedBy:          run.CreatedBy,
	}
	for _, e := range run.Employees {
		resp.Employees = append(resp.Employees, PayrollRunEmployeeResponse{
			EmployeeID:       e.EmployeeID,
			EmployeeName:     e.EmployeeName,
			WorkerType:       string(e.WorkerType),
			BankName:         e.BankName,
			AccountNumber:    e.AccountNumber,
			BranchCode:       e.BranchCode,
			PayrollBreakdown: e.PayrollBreakdown,
		})
	}
	return resp
}

type ListPayrollRunResponse struct {
	Data       []PayrollRunResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

// FileResponse is a downloadable artifact of a run.
type FileResponse struct {
	FileName    string
	ContentType string
	Content     []byte
}
