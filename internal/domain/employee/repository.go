package employee

import "context"

type EmployeeRepository interface {
	// ListForPayroll returns every non-deleted employee regardless of status,
	// ordered by id.
	ListForPayroll(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
}
