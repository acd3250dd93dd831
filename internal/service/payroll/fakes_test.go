package payroll

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/stretchr/testify/require"
)

type fakeConfigProvider struct {
	cfg        payroll.PayrollConfig
	err        error
	panicMsg   string
	waitCancel bool
}

func (f *fakeConfigProvider) Current(ctx context.Context) (payroll.PayrollConfig, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.waitCancel {
		<-ctx.Done()
		return payroll.PayrollConfig{}, ctx.Err()
	}
	return f.cfg, f.err
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	err       error
}

func (f *fakeEmployeeRepo) ListForPayroll(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeRunRepo struct {
	mu        sync.Mutex
	runs      []payroll.PayrollRun
	createErr error
}

func (f *fakeRunRepo) Create(ctx context.Context, run payroll.PayrollRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeRunRepo) GetByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return payroll.PayrollRun{}, payroll.ErrPayrollRunNotFound
}

func (f *fakeRunRepo) List(ctx context.Context, filter payroll.PayrollRunFilter) ([]payroll.PayrollRun, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []payroll.PayrollRun
	for _, r := range f.runs {
		if filter.Period != nil && r.Period != *filter.Period {
			continue
		}
		r.Employees = nil
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

type auditEntry struct {
	actor     string
	action    string
	details   string
	timestamp time.Time
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (f *fakeRecorder) Record(ctx context.Context, actor, action, details string, timestamp time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{actor, action, details, timestamp})
}

type panickingBankFile struct{}

func (panickingBankFile) Render(run payroll.PayrollRun) ([]byte, error) {
	panic("renderer exploded")
}

type fixture struct {
	svc      *PayrollServiceImpl
	config   *fakeConfigProvider
	emps     *fakeEmployeeRepo
	runs     *fakeRunRepo
	recorder *fakeRecorder
	storage  *storage.LocalStorage
	locker   *LocalRunLocker
}

var fixedNow = time.Date(2026, 10, 31, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T, employees ...employee.Employee) *fixture {
	t.Helper()

	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		config:   &fakeConfigProvider{cfg: testConfig()},
		emps:     &fakeEmployeeRepo{employees: employees},
		runs:     &fakeRunRepo{},
		recorder: &fakeRecorder{},
		storage:  fs,
		locker:   NewLocalRunLocker(),
	}

	svc := NewPayrollService(f.config, f.emps, f.runs, f.locker, f.storage, f.recorder).(*PayrollServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	seq := 0
	svc.newID = func() (string, error) {
		seq++
		return fmt.Sprintf("0192f000-0000-7000-8000-%012d", seq), nil
	}
	f.svc = svc
	return f
}

func activeSalaried(id, name string, salary string) employee.Employee {
	return employee.Employee{
		ID:            id,
		FullName:      name,
		WorkerType:    employee.WorkerTypeSalaried,
		Status:        employee.EmploymentStatusActive,
		Salary:        dec(salary),
		BankName:      "Zanaco",
		AccountNumber: "ACC-" + id,
	}
}
