package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkerType(t *testing.T) {
	tests := []struct {
		input   string
		want    WorkerType
		wantErr bool
	}{
		{"salaried", WorkerTypeSalaried, false},
		{" Hourly ", WorkerTypeHourly, false},
		{"CONTRACTOR", WorkerTypeContractor, false},
		{"", WorkerTypeSalaried, false},
		{"intern", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWorkerType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWorkerType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmployee_IsPayrollEligible(t *testing.T) {
	tests := []struct {
		name string
		emp  Employee
		want bool
	}{
		{"active with bank", Employee{Status: EmploymentStatusActive, BankName: "Zanaco", AccountNumber: "001"}, true},
		{"inactive", Employee{Status: EmploymentStatusInactive, BankName: "Zanaco", AccountNumber: "001"}, false},
		{"blank bank name", Employee{Status: EmploymentStatusActive, BankName: "  ", AccountNumber: "001"}, false},
		{"missing account", Employee{Status: EmploymentStatusActive, BankName: "Zanaco"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.emp.IsPayrollEligible())
		})
	}
}

func TestEmployee_Normalize(t *testing.T) {
	t.Run("clamps negatives", func(t *testing.T) {
		emp := Employee{
			WorkerType: WorkerTypeSalaried,
			Salary:     decimal.NewFromInt(-100),
			Bonus:      decimal.NewFromInt(-5),
			Deductions: decimal.NewFromInt(20),
		}.Normalize()

		assert.True(t, emp.Salary.IsZero())
		assert.True(t, emp.Bonus.IsZero())
		assert.True(t, emp.Deductions.Equal(decimal.NewFromInt(20)))
	})

	t.Run("hourly drops salary", func(t *testing.T) {
		emp := Employee{
			WorkerType:  WorkerTypeHourly,
			Salary:      decimal.NewFromInt(1000),
			HourlyRate:  decimal.NewFromInt(20),
			HoursWorked: decimal.NewFromInt(160),
		}.Normalize()

		assert.True(t, emp.Salary.IsZero())
		assert.True(t, emp.HourlyRate.Equal(decimal.NewFromInt(20)))
	})

	t.Run("salaried drops hourly fields", func(t *testing.T) {
		emp := Employee{
			WorkerType: WorkerTypeSalaried,
			Salary:     decimal.NewFromInt(1000),
			HourlyRate: decimal.NewFromInt(20),
			Overtime:   decimal.NewFromInt(4),
		}.Normalize()

		assert.True(t, emp.HourlyRate.IsZero())
		assert.True(t, emp.Overtime.IsZero())
	})
}

func TestStatusFromRecord(t *testing.T) {
	tests := []struct {
		input   string
		want    EmploymentStatus
		wantOK  bool
		payroll bool
	}{
		{"active", EmploymentStatusActive, true, true},
		{" Suspended ", EmploymentStatusSuspended, true, false},
		{"on_leave", EmploymentStatusInactive, false, false},
		{"", EmploymentStatusInactive, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := StatusFromRecord(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)

			e := Employee{Status: got, BankName: "Zanaco", AccountNumber: "1"}
			assert.Equal(t, tt.payroll, e.IsPayrollEligible())
		})
	}
}
