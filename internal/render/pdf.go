package render

import (
	"bytes"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"statements/internal/core"
	"statements/internal/statement"
)

// Column widths in mm; the A4 body is 170mm wide with 20mm margins.
var pdfCols = []struct {
	title string
	width float64
	align string
}{
	{"S. No.", 14, "C"},
	{"Invoice Date", 28, "C"},
	{"Invoice No.", 42, "C"},
	{"Due Amount", 28, "R"},
	{"Amount Received", 30, "R"},
	{"Received Date", 28, "C"},
}

const (
	pdfRowHeight  = 7.0
	pdfPageBottom = 277.0 // A4 height minus bottom margin
	pdfMargin     = 20.0
)

// PDF renders the printable statement document: branding, title, meta
// lines, the four-line balance summary, the row table with its header
// repeated on every page, the totals row and the footer disclaimer.
func PDF(st *statement.Statement, branding Branding, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	if branding.CompanyName != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 8, branding.CompanyName, "", 1, "C", false, 0, "")
		if branding.TagLine != "" {
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 5, branding.TagLine, "", 1, "C", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Outstanding Invoice Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Customer Name: "+st.Customer, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Statement Date: "+now.Format(core.DisplayDateLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Period: "+st.DateRange, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	balance := []struct{ label, value string }{
		{"Opening Balance", core.FormatDecimal(st.Opening)},
		{"Invoices", core.FormatDecimal(st.Invoiced)},
		{"Receipts", core.FormatDecimal(st.Received)},
		{"Closing Balance", core.FormatDecimal(st.Closing)},
	}
	for _, b := range balance {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 6, b.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(50, 6, b.value, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	writeTableHeader(pdf)
	pdf.SetFont("Arial", "", 9)
	for _, line := range st.Lines {
		if pdf.GetY()+pdfRowHeight > pdfPageBottom {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Arial", "", 9)
		}
		cells := []string{
			strconv.Itoa(line.Seq),
			line.InvoiceDate,
			line.InvoiceNumber,
			line.DueAmount,
			line.AmountReceived,
			line.ReceivedDate,
		}
		for i, c := range pdfCols {
			pdf.CellFormat(c.width, pdfRowHeight, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.GetY()+pdfRowHeight > pdfPageBottom {
		pdf.AddPage()
		writeTableHeader(pdf)
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	totalWidth := pdfCols[0].width + pdfCols[1].width + pdfCols[2].width
	pdf.CellFormat(totalWidth, pdfRowHeight, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfCols[3].width, pdfRowHeight, core.FormatDecimal(st.TotalDue), "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfCols[4].width, pdfRowHeight, core.FormatDecimal(st.TotalReceived), "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfCols[5].width, pdfRowHeight, "", "1", 1, "C", true, 0, "")

	footer := branding.Footer
	if footer == "" {
		footer = DefaultFooter
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, footer, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(31, 42, 90)
	pdf.SetTextColor(255, 255, 255)
	for _, c := range pdfCols {
		pdf.CellFormat(c.width, pdfRowHeight, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

