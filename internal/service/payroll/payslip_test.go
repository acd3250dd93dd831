package payroll

import (
	"bytes"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFPayslipRenderer_Render(t *testing.T) {
	run := payroll.PayrollRun{
		ID:      "0192a3b4-0000-7000-8000-000000000001",
		Period:  "2026-10",
		RunDate: time.Date(2026, 10, 31, 9, 0, 0, 0, time.UTC),
	}
	row := payroll.PayrollRunEmployee{
		EmployeeID:    "e-1",
		EmployeeName:  "Chipo Mulenga",
		WorkerType:    employee.WorkerTypeSalaried,
		BankName:      "Zanaco",
		AccountNumber: "0012345678",
		PayrollBreakdown: payroll.PayrollBreakdown{
			GrossPay: dec("10000"),
			NetPay:   dec("8174"),
		},
	}

	out, err := NewPDFPayslipRenderer().Render(run, row)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestMaskAccount(t *testing.T) {
	assert.Equal(t, "****5678", maskAccount("0012345678"))
	assert.Equal(t, "123", maskAccount("123"))
}
