package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	resp "trailhub/internal/models/response_models"
)

const generatedLayout = "2006-01-02 15:04:05"

// ExportService renders budgets and checklists as downloadable documents.
type ExportService interface {
	BudgetPDF(b resp.BudgetResponse) ([]byte, error)
	BudgetXLSX(b resp.BudgetResponse) ([]byte, error)
	ChecklistPDF(adventureType string, items []string) ([]byte, error)
}

type exportService struct {
	now func() time.Time
}

func NewExportService() ExportService {
	return &exportService{now: time.Now}
}

type budgetLine struct {
	Label string
	Value float64
}

func budgetLines(b resp.BudgetResponse) []budgetLine {
	return []budgetLine{
		{"Transport", b.Breakdown.Transportation},
		{"Accommodation", b.Breakdown.Accommodation},
		{"Food", b.Breakdown.Food},
		{"Gear", b.Breakdown.Equipment},
		{"Total", b.Breakdown.Total},
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func (s *exportService) newDocument(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(190, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(190, 10, "Generated: "+s.now().Format(generatedLayout), "", 1, "L", false, 0, "")
	pdf.Ln(10)
	return pdf
}

func render(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) BudgetPDF(b resp.BudgetResponse) ([]byte, error) {
	pdf := s.newDocument("Trip Budget Estimation")
	for _, line := range budgetLines(b) {
		pdf.CellFormat(190, 10, fmt.Sprintf("%s: %s", line.Label, formatMoney(line.Value)), "", 1, "L", false, 0, "")
	}
	return render(pdf)
}

func (s *exportService) ChecklistPDF(adventureType string, items []string) ([]byte, error) {
	pdf := s.newDocument("Packing Checklist: " + adventureType)
	for _, item := range items {
		pdf.CellFormat(190, 10, "- "+item, "", 1, "L", false, 0, "")
	}
	return render(pdf)
}

func (s *exportService) BudgetXLSX(b resp.BudgetResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Budget"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Adventure Type", b.AdventureType},
		{"Location", b.Location},
		{"Duration (days)", b.Duration},
		{"People", b.People},
		{},
		{"Item", "Cost"},
	}
	for _, line := range budgetLines(b) {
		rows = append(rows, []interface{}{line.Label, line.Value})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Generated", s.now().Format(generatedLayout)})

	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
