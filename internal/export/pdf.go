package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"shipdash-backend/internal/models"
	"shipdash-backend/internal/timeutil"
)

// PDF renders the same projection as CSV into a printable table.
// Landscape A4, alternating row shading. Empty input yields
// ErrNothingToExport, matching the CSV path.
func PDF(records []models.Shipment) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Shipment Records", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{40, 20, 28, 34, 32, 25, 25, 30, 30}

	// Table header
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, col := range Header {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Table rows
	pdf.SetFont("Arial", "", 9)
	for i, s := range records {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}
		for j, cell := range Row(s) {
			align := "C"
			if j >= 5 {
				align = "R"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
