package models

import "time"

// Risk categories assigned by the prediction service
const (
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// PredictionRequest asks the prediction service for a damage forecast
// on a shipment that has not left the warehouse yet.
type PredictionRequest struct {
	Date        time.Time `json:"date"`
	DealerCode  int       `json:"dealer_code"`
	Warehouse   string    `json:"warehouse"`
	ProductCode string    `json:"product_code"`
	Vehicle     string    `json:"vehicle"`
	Shipped     int       `json:"shipped"`
}

// Recommendation is one actionable item returned with a prediction
type Recommendation struct {
	Priority string `json:"priority"` // CRITICAL, HIGH, MEDIUM, LOW
	Category string `json:"category"` // Loading, Vehicle, Dealer, Packaging
	Message  string `json:"message"`
	Impact   string `json:"impact"`
}

// PredictionResponse mirrors the prediction service's response shape
type PredictionResponse struct {
	PredictionID           string             `json:"prediction_id"`
	Timestamp              time.Time          `json:"timestamp"`
	PredictedDamageRate    float64            `json:"predicted_damage_rate"`
	PredictedReturned      int                `json:"predicted_returned"`
	RiskCategory           string             `json:"risk_category"`
	ConfidenceScore        float64            `json:"confidence_score"`
	EstimatedLoss          float64            `json:"estimated_loss"`
	ModelName              string             `json:"model_name"`
	FeatureImportance      map[string]float64 `json:"feature_importance,omitempty"`
	Recommendations        []Recommendation   `json:"recommendations,omitempty"`
	DealerHistoricalRisk   *float64           `json:"dealer_historical_risk,omitempty"`
	WarehouseHistoricalRisk *float64          `json:"warehouse_historical_risk,omitempty"`
	IsOverloaded           bool               `json:"is_overloaded"`
	LoadingRatio           *float64           `json:"loading_ratio,omitempty"`
}
