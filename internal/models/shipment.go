package models

import "time"

// Warehouse codes for the five dispatch warehouses
const (
	WarehouseNAG = "NAG"
	WarehouseMUM = "MUM"
	WarehouseGOA = "GOA"
	WarehouseKOL = "KOL"
	WarehousePUN = "PUN"
)

// Vehicle types used for dealer deliveries
const (
	VehicleAutorickshaw = "Autorickshaw"
	VehicleVikram       = "Vikram"
	VehicleMinitruck    = "Minitruck"
)

// Warehouses lists every valid warehouse code.
var Warehouses = []string{WarehouseNAG, WarehouseMUM, WarehouseGOA, WarehouseKOL, WarehousePUN}

// Vehicles lists every valid vehicle type.
var Vehicles = []string{VehicleAutorickshaw, VehicleVikram, VehicleMinitruck}

// VehicleCapacity maps vehicle type to its tin capacity.
// Shipping above capacity flags the load as overloaded.
var VehicleCapacity = map[string]int{
	VehicleAutorickshaw: 13,
	VehicleVikram:       22,
	VehicleMinitruck:    40,
}

// Shipment is one logged consignment of painted tins from a warehouse
// to a dealer. Records come from the upstream shipments API and are
// treated as immutable snapshots; returned/damage_rate/loss_value are
// filled in upstream once the delivery outcome is known.
type Shipment struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	DealerCode  int       `json:"dealer_code"` // 1-100
	Warehouse   string    `json:"warehouse"`
	ProductCode string    `json:"product_code"` // exactly 9 digits
	Vehicle     string    `json:"vehicle"`
	Shipped     int       `json:"shipped"`
	Returned    *int      `json:"returned,omitempty"`
	DamageRate  *float64  `json:"damage_rate,omitempty"` // returned/shipped, computed upstream
	LossValue   *float64  `json:"loss_value,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateShipmentRequest represents the request body for logging a new shipment
type CreateShipmentRequest struct {
	Date        string `json:"date"`
	DealerCode  int    `json:"dealer_code"`
	Warehouse   string `json:"warehouse"`
	ProductCode string `json:"product_code"`
	Vehicle     string `json:"vehicle"`
	Shipped     int    `json:"shipped"`
}

// UpdateShipmentRequest records the delivery outcome (returned tin count)
type UpdateShipmentRequest struct {
	Returned int `json:"returned"`
}

// ValidWarehouse reports whether code is one of the five warehouse codes.
func ValidWarehouse(code string) bool {
	for _, w := range Warehouses {
		if w == code {
			return true
		}
	}
	return false
}

// ValidVehicle reports whether v is a known vehicle type.
func ValidVehicle(v string) bool {
	for _, known := range Vehicles {
		if known == v {
			return true
		}
	}
	return false
}
