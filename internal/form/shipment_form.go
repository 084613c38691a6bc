// Package form guards the data entering the shipment pipeline: it
// validates and normalizes user-entered fields into a well-formed
// create request before anything is sent upstream.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipdash-backend/internal/models"
	"shipdash-backend/internal/timeutil"
)

// Validation failures surfaced to the user. The submission is never
// attempted when any of these fire.
var (
	ErrInvalidProductCode     = errors.New("product code must be exactly 9 digits")
	ErrDealerCodeOutOfRange   = errors.New("dealer code must be between 1 and 100")
	ErrInvalidShippedQuantity = errors.New("shipped quantity must be at least 1")
	ErrInvalidWarehouse       = errors.New("unknown warehouse code")
	ErrInvalidVehicle         = errors.New("unknown vehicle type")
	ErrInvalidDate            = errors.New("date must be YYYY-MM-DD or RFC 3339")
)

// ShipmentForm is the raw user input from the create-shipment page.
type ShipmentForm struct {
	Date        string `json:"date"`
	DealerCode  int    `json:"dealer_code"`
	Warehouse   string `json:"warehouse"`
	ProductCode string `json:"product_code"`
	Vehicle     string `json:"vehicle"`
	Shipped     int    `json:"shipped"`
}

// Validate checks the form and returns the normalized create request
// to forward upstream: trimmed strings, canonical warehouse/vehicle
// casing, date coerced to an RFC 3339 instant. An empty date defaults
// to now.
func (f ShipmentForm) Validate() (*models.CreateShipmentRequest, error) {
	code := strings.TrimSpace(f.ProductCode)
	if !validProductCode(code) {
		return nil, ErrInvalidProductCode
	}
	if f.DealerCode < 1 || f.DealerCode > 100 {
		return nil, ErrDealerCodeOutOfRange
	}
	if f.Shipped < 1 {
		return nil, ErrInvalidShippedQuantity
	}

	warehouse := strings.ToUpper(strings.TrimSpace(f.Warehouse))
	if !models.ValidWarehouse(warehouse) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWarehouse, f.Warehouse)
	}
	vehicle := normalizeVehicle(f.Vehicle)
	if !models.ValidVehicle(vehicle) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVehicle, f.Vehicle)
	}

	date, err := normalizeDate(f.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateShipmentRequest{
		Date:        date,
		DealerCode:  f.DealerCode,
		Warehouse:   warehouse,
		ProductCode: code,
		Vehicle:     vehicle,
		Shipped:     f.Shipped,
	}, nil
}

func validProductCode(code string) bool {
	if len(code) != 9 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normalizeVehicle(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
}

// normalizeDate coerces user input to a canonical RFC 3339 instant.
// Bare calendar dates are anchored at midnight IST.
func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return timeutil.Now().Format(time.RFC3339), nil
	}
	if t, err := time.ParseInLocation(timeutil.DateLayout, raw, timeutil.IST); err == nil {
		return t.Format(time.RFC3339), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
