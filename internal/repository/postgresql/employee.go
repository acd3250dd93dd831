package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, worker_type, employment_status,
	COALESCE(salary, 0), COALESCE(hourly_rate, 0), COALESCE(hours_worked, 0), COALESCE(overtime_hours, 0),
	COALESCE(bonus, 0), COALESCE(allowances, 0), COALESCE(deductions, 0), COALESCE(reimbursements, 0),
	COALESCE(bank_name, ''), COALESCE(bank_account_number, ''), bank_branch_code,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e          employee.Employee
		workerType string
		status     string
	)
	err := row.Scan(
		&e.ID, &e.FullName, &workerType, &status,
		&e.Salary, &e.HourlyRate, &e.HoursWorked, &e.Overtime,
		&e.Bonus, &e.Allowances, &e.Deductions, &e.Reimbursements,
		&e.BankName, &e.AccountNumber, &e.BranchCode,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if e.WorkerType, err = employee.ParseWorkerType(workerType); err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: %w", e.ID, err)
	}
	var known bool
	if e.Status, known = employee.StatusFromRecord(status); !known {
		slog.Warn("Unknown employment status, treating employee as inactive", "employee_id", e.ID, "status", status)
	}
	return e.Normalize(), nil
}

// ListForPayroll implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListForPayroll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return e, nil
}
