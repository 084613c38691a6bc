package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdash-backend/internal/timeutil"
)

func validForm() ShipmentForm {
	return ShipmentForm{
		Date:        "2026-08-10",
		DealerCode:  7,
		Warehouse:   "NAG",
		ProductCode: "123456789",
		Vehicle:     "Vikram",
		Shipped:     20,
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	req, err := validForm().Validate()
	require.NoError(t, err)

	assert.Equal(t, 7, req.DealerCode)
	assert.Equal(t, "NAG", req.Warehouse)
	assert.Equal(t, "123456789", req.ProductCode)
	assert.Equal(t, "Vikram", req.Vehicle)
	assert.Equal(t, 20, req.Shipped)
}

func TestValidateProductCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"nine digits", "123456789", true},
		{"too short", "12345", false},
		{"too long", "1234567890", false},
		{"letters", "12345678a", false},
		{"empty", "", false},
		{"spaces inside", "123 45678", false},
		{"padded is trimmed", " 123456789 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.ProductCode = tt.code
			_, err := f.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidProductCode)
			}
		})
	}
}

func TestValidateDealerCodeRange(t *testing.T) {
	for _, code := range []int{0, -1, 101, 5000} {
		f := validForm()
		f.DealerCode = code
		_, err := f.Validate()
		assert.ErrorIs(t, err, ErrDealerCodeOutOfRange, "dealer_code=%d", code)
	}

	for _, code := range []int{1, 50, 100} {
		f := validForm()
		f.DealerCode = code
		_, err := f.Validate()
		assert.NoError(t, err, "dealer_code=%d", code)
	}
}

func TestValidateShippedQuantity(t *testing.T) {
	f := validForm()
	f.Shipped = 0
	_, err := f.Validate()
	assert.ErrorIs(t, err, ErrInvalidShippedQuantity)

	f.Shipped = -3
	_, err = f.Validate()
	assert.ErrorIs(t, err, ErrInvalidShippedQuantity)

	f.Shipped = 1
	_, err = f.Validate()
	assert.NoError(t, err)
}

func TestValidateChecksProductCodeFirst(t *testing.T) {
	// Multiple broken fields: the product code error wins.
	f := ShipmentForm{ProductCode: "12345", DealerCode: 0, Shipped: 0}
	_, err := f.Validate()
	assert.ErrorIs(t, err, ErrInvalidProductCode)
}

func TestValidateNormalizesCasing(t *testing.T) {
	f := validForm()
	f.Warehouse = "nag"
	f.Vehicle = "VIKRAM"

	req, err := f.Validate()
	require.NoError(t, err)
	assert.Equal(t, "NAG", req.Warehouse)
	assert.Equal(t, "Vikram", req.Vehicle)
}

func TestValidateRejectsUnknownCategories(t *testing.T) {
	f := validForm()
	f.Warehouse = "DEL"
	_, err := f.Validate()
	assert.ErrorIs(t, err, ErrInvalidWarehouse)

	f = validForm()
	f.Vehicle = "Truck"
	_, err = f.Validate()
	assert.ErrorIs(t, err, ErrInvalidVehicle)
}

func TestValidateDateHandling(t *testing.T) {
	f := validForm()
	f.Date = "2026-08-10"
	req, err := f.Validate()
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, req.Date)
	require.NoError(t, err)
	inIST := timeutil.ToIST(parsed)
	assert.Equal(t, 10, inIST.Day())
	assert.Equal(t, 0, inIST.Hour(), "bare dates anchor at midnight IST")

	f.Date = "2026-08-10T09:15:00+05:30"
	req, err = f.Validate()
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, req.Date)
	assert.NoError(t, err)

	f.Date = "10/08/2026"
	_, err = f.Validate()
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidateEmptyDateDefaultsToNow(t *testing.T) {
	f := validForm()
	f.Date = ""

	req, err := f.Validate()
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, req.Date)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}
