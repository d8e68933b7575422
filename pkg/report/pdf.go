// Package report renders simulation results as a printable PDF.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/format"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 15.0
	pageWidth    = 210.0
	contentWidth = pageWidth - marginLeft - marginRight
	yearWidth    = 20.0
	rowHeight    = 6.0
)

// PDFReport accumulates one table per simulation.
type PDFReport struct {
	pdf   *fpdf.Fpdf
	title string
}

// NewPDFReport starts an A4 portrait report.
func NewPDFReport(title string) *PDFReport {
	report := &PDFReport{
		pdf:   fpdf.New("P", "mm", "A4", ""),
		title: title,
	}
	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)
	report.pdf.SetTitle(title, true)
	return report
}

// AddResult renders a simulation on its own page.
func (r *PDFReport) AddResult(result simulate.Result) {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.CellFormat(contentWidth, 10, r.title, "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 12)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("%s (%s)", result.Name, result.Kind), "", 1, "C", false, 0, "")
	r.pdf.Ln(4)

	columns := result.Columns()
	if len(columns) == 0 {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.CellFormat(contentWidth, rowHeight, "No data", "", 1, "L", false, 0, "")
		return
	}
	valueWidth := (contentWidth - yearWidth) / float64(len(columns))

	header := func() {
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.SetFillColor(245, 247, 250)
		r.pdf.CellFormat(yearWidth, rowHeight+1, "Year", "1", 0, "C", true, 0, "")
		for _, column := range columns {
			r.pdf.CellFormat(valueWidth, rowHeight+1, strings.ToUpper(column[:1])+column[1:], "1", 0, "C", true, 0, "")
		}
		r.pdf.Ln(-1)
		r.pdf.SetFont("Arial", "", 10)
	}

	header()
	_, pageHeight := r.pdf.GetPageSize()
	for _, row := range result.Rows() {
		if r.pdf.GetY()+rowHeight > pageHeight-marginBottom {
			r.pdf.AddPage()
			header()
		}
		r.pdf.CellFormat(yearWidth, rowHeight, strconv.Itoa(row.Year), "1", 0, "C", false, 0, "")
		for _, v := range row.Values {
			r.pdf.CellFormat(valueWidth, rowHeight, format.Grouped(v), "1", 0, "R", false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

// Write emits the finished document.
func (r *PDFReport) Write(w io.Writer) error {
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// WritePDF renders results into a single PDF document.
func WritePDF(w io.Writer, title string, results []simulate.Result) error {
	report := NewPDFReport(title)
	if len(results) == 0 {
		report.pdf.AddPage()
		report.pdf.SetFont("Arial", "I", 12)
		report.pdf.CellFormat(contentWidth, 10, "No active simulations", "", 1, "C", false, 0, "")
	}
	for _, result := range results {
		report.AddResult(result)
	}
	return report.Write(w)
}

// PDFBytes renders results and returns the document bytes.
func PDFBytes(title string, results []simulate.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, title, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
