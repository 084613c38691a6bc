package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"shipdash-backend/internal/models"
	"shipdash-backend/internal/timeutil"
)

// ErrNothingToExport is returned when an export is requested for an
// empty collection. No file is produced in that case.
var ErrNothingToExport = errors.New("no shipments to export")

// Header is the fixed column order of every tabular export.
var Header = []string{
	"Date", "Dealer", "Warehouse", "Product Code", "Vehicle",
	"Shipped", "Returned", "Damage Rate", "Loss Value",
}

// Filename returns the download name for an export generated now,
// e.g. shipments_2026-08-28.csv.
func Filename(ext string) string {
	return fmt.Sprintf("shipments_%s.%s", timeutil.Now().Format(timeutil.DateLayout), ext)
}

// Row projects one shipment into the flat export row. Absent optional
// fields become empty cells, never a literal null marker.
func Row(s models.Shipment) []string {
	returned := ""
	if s.Returned != nil {
		returned = strconv.Itoa(*s.Returned)
	}
	damageRate := ""
	if s.DamageRate != nil {
		damageRate = fmt.Sprintf("%.2f%%", *s.DamageRate*100)
	}
	lossValue := ""
	if s.LossValue != nil {
		lossValue = strconv.FormatFloat(*s.LossValue, 'f', -1, 64)
	}
	return []string{
		timeutil.ToIST(s.Date).Format(timeutil.DateTimeLayout),
		strconv.Itoa(s.DealerCode),
		s.Warehouse,
		s.ProductCode,
		s.Vehicle,
		strconv.Itoa(s.Shipped),
		returned,
		damageRate,
		lossValue,
	}
}

// CSV serializes the records into a comma-separated document with a
// header row, one row per record, in input order. An empty input
// yields ErrNothingToExport and no bytes.
func CSV(records []models.Shipment) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write(Header)
	for _, s := range records {
		w.Write(Row(s))
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseRowDate parses the Date cell of an exported row back into a
// time in IST. Used by tests and the archive verifier.
func ParseRowDate(cell string) (time.Time, error) {
	return time.ParseInLocation(timeutil.DateTimeLayout, cell, timeutil.IST)
}
