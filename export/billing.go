package export

import (
	"fmt"
	"io"
	"time"

	"ezpresta-backend/stats"

	"github.com/xuri/excelize/v2"
)

const (
	MonthlySheet = "Monthly"
	YearlySheet  = "Yearly"
)

// BillingWorkbook builds the billing export: one sheet with the months of
// year, one with every year.
func BillingWorkbook(year int, months []stats.MonthBilling, years []stats.YearBilling) (*excelize.File, error) {
	f := excelize.NewFile()

	// The default sheet becomes the monthly one.
	if err := f.SetSheetName(f.GetSheetName(0), MonthlySheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, MonthlySheet, "Month", "Invoiced", "Received", "Canceled"); err != nil {
		return nil, err
	}
	for i, m := range months {
		row := i + 2
		f.SetCellValue(MonthlySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s %d", time.Month(m.Month), year))
		f.SetCellValue(MonthlySheet, fmt.Sprintf("B%d", row), m.Invoiced.InexactFloat64())
		f.SetCellValue(MonthlySheet, fmt.Sprintf("C%d", row), m.Received.InexactFloat64())
		f.SetCellValue(MonthlySheet, fmt.Sprintf("D%d", row), m.Canceled.InexactFloat64())
	}

	if _, err := f.NewSheet(YearlySheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, YearlySheet, "Year", "Invoiced", "Received"); err != nil {
		return nil, err
	}
	for i, y := range years {
		row := i + 2
		f.SetCellValue(YearlySheet, fmt.Sprintf("A%d", row), y.Year)
		f.SetCellValue(YearlySheet, fmt.Sprintf("B%d", row), y.Invoiced.InexactFloat64())
		f.SetCellValue(YearlySheet, fmt.Sprintf("C%d", row), y.Received.InexactFloat64())
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers ...string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	return nil
}

// WriteBilling streams the workbook to w.
func WriteBilling(w io.Writer, year int, months []stats.MonthBilling, years []stats.YearBilling) error {
	f, err := BillingWorkbook(year, months, years)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
