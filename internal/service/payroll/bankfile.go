package payroll

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/gocarina/gocsv"
)

// transferRow is one line of the bank transfer file. Field order and tags
// define the header.
type transferRow struct {
	EmployeeName  string `csv:"EmployeeName"`
	BankName      string `csv:"BankName"`
	AccountNumber string `csv:"AccountNumber"`
	BranchCode    string `csv:"BranchCode"`
	Amount        string `csv:"Amount"`
}

type CSVBankFileGenerator struct{}

func NewCSVBankFileGenerator() payroll.BankFileGenerator {
	return &CSVBankFileGenerator{}
}

// Render writes one row per run employee in run order. Values containing
// commas, quotes or newlines are quoted per RFC 4180.
func (g *CSVBankFileGenerator) Render(run payroll.PayrollRun) ([]byte, error) {
	rows := make([]*transferRow, 0, len(run.Employees))
	for _, e := range run.Employees {
		rows = append(rows, &transferRow{
			EmployeeName:  e.EmployeeName,
			BankName:      e.BankName,
			AccountNumber: e.AccountNumber,
			BranchCode:    e.BranchCode,
			Amount:        e.NetPay.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := gocsv.Marshal(rows, &buf); err != nil {
		return nil, fmt.Errorf("failed to render transfer file: %w", err)
	}
	return buf.Bytes(), nil
}

// transferFileName is the storage path of a run's transfer file.
func transferFileName(run payroll.PayrollRun) string {
	return fmt.Sprintf("payroll/%s/ach-%s.csv", run.Period, run.ID)
}
