package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.PayrollRunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

// Create writes the run header and every employee row in one transaction.
func (r *payrollRunRepositoryImpl) Create(ctx context.Context, run payroll.PayrollRun) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO payroll_runs (
				id, period, run_date, employee_count, skipped_count,
				total_amount, total_gross, total_deductions, total_employer_napsa,
				ach_file_name, created_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			run.ID, run.Period, run.RunDate, run.EmployeeCount, run.SkippedCount,
			run.TotalAmount, run.TotalGross, run.TotalDeductions, run.TotalEmployerNapsa,
			run.ACHFileName, run.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payroll run: %w", err)
		}

		batch := &pgx.Batch{}
		for i, e := range run.Employees {
			batch.Queue(`
				INSERT INTO payroll_run_employees (
					payroll_run_id, position, employee_id, employee_name, worker_type,
					bank_name, account_number, branch_code,
					gross_pay, tax_deduction, employee_napsa_deduction, employer_napsa_contribution,
					employee_nhima_deduction, other_deductions, reimbursements, total_deductions, net_pay
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			`,
				run.ID, i, e.EmployeeID, e.EmployeeName, string(e.WorkerType),
				e.BankName, e.AccountNumber, e.BranchCode,
				e.GrossPay, e.TaxDeduction, e.EmployeeNapsaDeduction, e.EmployerNapsaContribution,
				e.EmployeeNhimaDeduction, e.OtherDeductions, e.Reimbursements, e.TotalDeductions, e.NetPay,
			)
		}

		br := tx.SendBatch(ctx, batch)
		for _, e := range run.Employees {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert payroll run employee %s: %w", e.EmployeeID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert payroll run employees: %w", err)
		}

		return nil
	})
}

const payrollRunColumns = `
	id, period, run_date, employee_count, skipped_count,
	total_amount, total_gross, total_deductions, total_employer_napsa,
	ach_file_name, created_by, created_at
`

func scanPayrollRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	err := row.Scan(
		&run.ID, &run.Period, &run.RunDate, &run.EmployeeCount, &run.SkippedCount,
		&run.TotalAmount, &run.TotalGross, &run.TotalDeductions, &run.TotalEmployerNapsa,
		&run.ACHFileName, &run.CreatedBy, &run.CreatedAt,
	)
	return run, err
}

func (r *payrollRunRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	run, err := scanPayrollRun(q.QueryRow(ctx, `SELECT `+payrollRunColumns+` FROM payroll_runs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrPayrollRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run by id: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT employee_id, employee_name, worker_type, bank_name, account_number, branch_code,
			   gross_pay, tax_deduction, employee_napsa_deduction, employer_napsa_contribution,
			   employee_nhima_deduction, other_deductions, reimbursements, total_deductions, net_pay
		FROM payroll_run_employees
		WHERE payroll_run_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e          payroll.PayrollRunEmployee
			workerType string
		)
		if err := rows.Scan(
			&e.EmployeeID, &e.EmployeeName, &workerType, &e.BankName, &e.AccountNumber, &e.BranchCode,
			&e.GrossPay, &e.TaxDeduction, &e.EmployeeNapsaDeduction, &e.EmployerNapsaContribution,
			&e.EmployeeNhimaDeduction, &e.OtherDeductions, &e.Reimbursements, &e.TotalDeductions, &e.NetPay,
		); err != nil {
			return payroll.PayrollRun{}, fmt.Errorf("failed to scan payroll run employee: %w", err)
		}
		e.WorkerType = employee.WorkerType(workerType)
		run.Employees = append(run.Employees, e)
	}
	if err := rows.Err(); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to iterate payroll run employees: %w", err)
	}

	return run, nil
}

func (r *payrollRunRepositoryImpl) List(ctx context.Context, filter payroll.PayrollRunFilter) ([]payroll.PayrollRun, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM payroll_runs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Period != nil {
		baseQuery += fmt.Sprintf(" AND period = $%d", argIdx)
		args = append(args, *filter.Period)
		argIdx++
	}
	if filter.CreatedBy != nil {
		baseQuery += fmt.Sprintf(" AND created_by = $%d", argIdx)
		args = append(args, *filter.CreatedBy)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY run_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		payrollRunColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanPayrollRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll runs: %w", err)
	}

	return runs, totalCount, nil
}
