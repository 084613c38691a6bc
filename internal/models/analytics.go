package models

import "time"

// AnalyticsSummary is the aggregate view computed by the analytics service
type AnalyticsSummary struct {
	TotalShipments        int                  `json:"total_shipments"`
	TotalTinsShipped      int                  `json:"total_tins_shipped"`
	TotalTinsReturned     int                  `json:"total_tins_returned"`
	AverageDamageRate     float64              `json:"average_damage_rate"`
	TotalEstimatedLoss    float64              `json:"total_estimated_loss"`
	HighRiskShipments     int                  `json:"high_risk_shipments"`
	CriticalRiskShipments int                  `json:"critical_risk_shipments"`
	DateRange             map[string]time.Time `json:"date_range"`
}

// DealerRiskProfile is the per-dealer aggregate with risk categorization
type DealerRiskProfile struct {
	DealerCode        int     `json:"dealer_code"`
	DealerName        string  `json:"dealer_name,omitempty"`
	TotalShipments    int     `json:"total_shipments"`
	AverageDamageRate float64 `json:"average_damage_rate"`
	TotalLoss         float64 `json:"total_loss"`
	RiskCategory      string  `json:"risk_category"`
	Trend             string  `json:"trend,omitempty"` // improving, stable, deteriorating
}

// WarehouseAnalytics is the per-warehouse aggregate
type WarehouseAnalytics struct {
	Warehouse         string  `json:"warehouse"`
	TotalShipments    int     `json:"total_shipments"`
	AverageDamageRate float64 `json:"average_damage_rate"`
	TotalLoss         float64 `json:"total_loss"`
	MostCommonVehicle string  `json:"most_common_vehicle"`
	OverloadFrequency float64 `json:"overload_frequency"`
}

// DashboardData bundles every analytics view the dashboard renders in one call
type DashboardData struct {
	Summary    AnalyticsSummary     `json:"summary"`
	TopDealers []DealerRiskProfile  `json:"top_dealers"`
	Warehouses []WarehouseAnalytics `json:"warehouses"`
}
