package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/shopspring/decimal"
)

const (
	// ActorScheduler is recorded as the actor of runs started by the cron job.
	ActorScheduler = "system:scheduler"
	// ActorUnknown is used when a caller does not identify itself.
	ActorUnknown = "system:unknown"

	AuditActionRunSucceeded = "payroll.run.succeeded"
	AuditActionRunFailed    = "payroll.run.failed"

	TransferFileContentType = "text/csv"
	PayslipContentType      = "application/pdf"

	PeriodLayout = "2006-01"
)

// TaxBand is one PAYE slice. A nil UpperBound marks the unbounded top band.
type TaxBand struct {
	UpperBound *decimal.Decimal `json:"upper_bound"`
	Rate       decimal.Decimal  `json:"rate"`
}

func (b TaxBand) IsUnbounded() bool {
	return b.UpperBound == nil
}

// PayrollConfig is the statutory configuration applied to every employee of a run.
type PayrollConfig struct {
	ID                 string
	TaxBands           []TaxBand
	NapsaRate          decimal.Decimal
	NapsaCeiling       decimal.Decimal
	NhimaRate          decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	WorkingHours       decimal.Decimal
	AllowancesPreTax   bool
	EffectiveFrom      time.Time
}

// PayrollBreakdown is the gross-to-net result for one employee. Every field is
// rounded to two decimal places.
type PayrollBreakdown struct {
	GrossPay                  decimal.Decimal `json:"gross_pay"`
	TaxDeduction              decimal.Decimal `json:"tax_deduction"`
	EmployeeNapsaDeduction    decimal.Decimal `json:"employee_napsa_deduction"`
	EmployerNapsaContribution decimal.Decimal `json:"employer_napsa_contribution"`
	EmployeeNhimaDeduction    decimal.Decimal `json:"employee_nhima_deduction"`
	OtherDeductions           decimal.Decimal `json:"other_deductions"`
	Reimbursements            decimal.Decimal `json:"reimbursements"`
	TotalDeductions           decimal.Decimal `json:"total_deductions"`
	NetPay                    decimal.Decimal `json:"net_pay"`
}

// PayrollRunEmployee is the frozen per-employee row of a run.
type PayrollRunEmployee struct {
	EmployeeID    string
	EmployeeName  string
	WorkerType    employee.WorkerType
	BankName      string
	AccountNumber string
	BranchCode    string
	PayrollBreakdown
}

// PayrollRun is immutable once persisted. Employees keeps processing order,
// which is also the transfer file row order.
type PayrollRun struct {
	ID                 string
	Period             string
	RunDate            time.Time
	EmployeeCount      int
	SkippedCount       int
	TotalAmount        decimal.Decimal
	TotalGross         decimal.Decimal
	TotalDeductions    decimal.Decimal
	TotalEmployerNapsa decimal.Decimal
	ACHFileName        string
	CreatedBy          string
	Employees          []PayrollRunEmployee
	CreatedAt          time.Time
}

// Employee looks up the run row of one employee.
func (r PayrollRun) Employee(employeeID string) (PayrollRunEmployee, bool) {
	for _, e := range r.Employees {
		if e.EmployeeID == employeeID {
			return e, true
		}
	}
	return PayrollRunEmployee{}, false
}

// Snapshot is the single read of config and employees a run works from.
// Accessors hand out copies so the run cannot observe later changes.
type Snapshot struct {
	config    PayrollConfig
	employees []employee.Employee
	takenAt   time.Time
}

func NewSnapshot(cfg PayrollConfig, employees []employee.Employee, takenAt time.Time) Snapshot {
	cfg.TaxBands = append([]TaxBand(nil), cfg.TaxBands...)
	return Snapshot{
		config:    cfg,
		employees: append([]employee.Employee(nil), employees...),
		takenAt:   takenAt,
	}
}

func (s Snapshot) Config() PayrollConfig {
	cfg := s.config
	cfg.TaxBands = append([]TaxBand(nil), s.config.TaxBands...)
	return cfg
}

func (s Snapshot) Employees() []employee.Employee {
	return append([]employee.Employee(nil), s.employees...)
}

func (s Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// RunRequest starts a payroll run. Period defaults to the month of the run date.
type RunRequest struct {
	Actor  string `json:"-"`
	Period string `json:"period,omitempty"`
}

// RunResult is what every caller of a run gets back, success or not.
type RunResult struct {
	Success            bool         `json:"success"`
	Message            string       `json:"message"`
	Code               RunErrorCode `json:"code,omitempty"`
	PayrollRunID       string       `json:"payroll_run_id,omitempty"`
	Period             string       `json:"period,omitempty"`
	FileContent        string       `json:"file_content,omitempty"` // base64
	ContentType        string       `json:"content_type,omitempty"`
	EmployeeCount      int          `json:"employee_count"`
	SkippedCount       int          `json:"skipped_count"`
	SkippedEmployeeIDs []string     `json:"skipped_employee_ids"`
}
