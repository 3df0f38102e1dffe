package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"statements/internal/statement"
)

const sheetName = "Statement"

var xlsxHeader = []string{"S. No.", "Invoice Date", "Invoice No.", "Due Amount", "Amount Received", "Received Date"}

// XLSX renders the spreadsheet export: metadata lines first, then the
// header row, then one row per display line. Amount cells are written
// as numbers, not formatted text, so formulas downstream keep working.
func XLSX(st *statement.Statement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	setCell(f, "A", 1, "Customer Name")
	setCell(f, "B", 1, st.Customer)
	setCell(f, "A", 2, "Period")
	setCell(f, "B", 2, st.DateRange)

	const headerRow = 4
	for i, h := range xlsxHeader {
		setCell(f, col(i), headerRow, h)
	}

	for i, line := range st.Lines {
		r := st.Rows[i]
		rowNum := headerRow + 1 + i
		setCell(f, "A", rowNum, line.Seq)
		setCell(f, "B", rowNum, line.InvoiceDate)
		setCell(f, "C", rowNum, line.InvoiceNumber)
		if r.DueAmount.Valid {
			setCell(f, "D", rowNum, r.DueAmount.Float64())
		}
		if r.AmountReceived.Valid {
			setCell(f, "E", rowNum, r.AmountReceived.Float64())
		}
		setCell(f, "F", rowNum, line.ReceivedDate)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, column string, row int, value any) {
	_ = f.SetCellValue(sheetName, fmt.Sprintf("%s%d", column, row), value)
}

func col(i int) string {
	return string(rune('A' + i))
}
