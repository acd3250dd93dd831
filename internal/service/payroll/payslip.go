package payroll

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type PDFPayslipRenderer struct{}

func NewPDFPayslipRenderer() payroll.PayslipRenderer {
	return &PDFPayslipRenderer{}
}

// Render draws a one-page A4 payslip from the frozen run row.
func (p *PDFPayslipRenderer) Render(run payroll.PayrollRun, row payroll.PayrollRunEmployee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", run.Period, row.EmployeeName), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Employee: %s", row.EmployeeName)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Worker type: %s", row.WorkerType))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", run.Period))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Run date: %s", run.RunDate.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Paid to: %s %s", row.BankName, maskAccount(row.AccountNumber))))
	pdf.Ln(10)

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Gross pay", row.GrossPay},
		{"PAYE", row.TaxDeduction},
		{"NAPSA (employee)", row.EmployeeNapsaDeduction},
		{"NHIMA", row.EmployeeNhimaDeduction},
		{"Other deductions", row.OtherDeductions},
		{"Total deductions", row.TotalDeductions},
		{"Reimbursements", row.Reimbursements},
	}
	for _, l := range lines {
		pdf.CellFormat(80, 7, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, l.amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, row.NetPay.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Employer NAPSA contribution: %s", row.EmployerNapsaContribution.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func maskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return "****" + account[len(account)-4:]
}

func payslipFileName(run payroll.PayrollRun, employeeID string) string {
	return fmt.Sprintf("payslip-%s-%s.pdf", run.Period, employeeID)
}
