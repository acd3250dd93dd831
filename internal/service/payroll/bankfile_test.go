package payroll

import (
	"strings"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVBankFileGenerator_Render(t *testing.T) {
	run := payroll.PayrollRun{
		ID:     "0192a3b4-0000-7000-8000-000000000001",
		Period: "2026-10",
		Employees: []payroll.PayrollRunEmployee{
			{
				EmployeeName:     "Mwansa Phiri",
				BankName:         "Zanaco",
				AccountNumber:    "0012345",
				BranchCode:       "001",
				PayrollBreakdown: payroll.PayrollBreakdown{NetPay: dec("8174")},
			},
			{
				EmployeeName:     "Banda, Chileshe",
				BankName:         `Stanbic "Main"`,
				AccountNumber:    "998877",
				PayrollBreakdown: payroll.PayrollBreakdown{NetPay: dec("1234567.5")},
			},
		},
	}

	out, err := NewCSVBankFileGenerator().Render(run)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "EmployeeName,BankName,AccountNumber,BranchCode,Amount", lines[0])
	assert.Equal(t, "Mwansa Phiri,Zanaco,0012345,001,8174.00", lines[1])
	assert.Equal(t, `"Banda, Chileshe","Stanbic ""Main""",998877,,1234567.50`, lines[2])
}

func TestCSVBankFileGenerator_RowOrderFollowsRun(t *testing.T) {
	run := payroll.PayrollRun{
		Employees: []payroll.PayrollRunEmployee{
			{EmployeeName: "C", BankName: "B", AccountNumber: "3"},
			{EmployeeName: "A", BankName: "B", AccountNumber: "1"},
			{EmployeeName: "B", BankName: "B", AccountNumber: "2"},
		},
	}

	out, err := NewCSVBankFileGenerator().Render(run)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "C,"))
	assert.True(t, strings.HasPrefix(lines[2], "A,"))
	assert.True(t, strings.HasPrefix(lines[3], "B,"))
}

func TestTransferFileName(t *testing.T) {
	run := payroll.PayrollRun{ID: "abc", Period: "2026-10"}
	assert.Equal(t, "payroll/2026-10/ach-abc.csv", transferFileName(run))
}
