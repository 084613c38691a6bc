package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"shipdash-backend/internal/form"
	"shipdash-backend/internal/middleware"
	"shipdash-backend/internal/models"
	"shipdash-backend/internal/upstream"
	"shipdash-backend/pkg/utils"
)

type PredictionHandler struct {
	API *upstream.Client
}

func NewPredictionHandler(api *upstream.Client) *PredictionHandler {
	return &PredictionHandler{API: api}
}

// Predict handles POST /api/predictions/predict. The payload goes
// through the same form validation as a create, so a malformed product
// code or dealer code is rejected before it reaches the model service.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var f form.ShipmentForm
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	normalized, err := f.Validate()
	if err != nil {
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	date, err := time.Parse(time.RFC3339, normalized.Date)
	if err != nil {
		utils.Error(w, http.StatusUnprocessableEntity, "Invalid date")
		return
	}

	req := &models.PredictionRequest{
		Date:        date,
		DealerCode:  normalized.DealerCode,
		Warehouse:   normalized.Warehouse,
		ProductCode: normalized.ProductCode,
		Vehicle:     normalized.Vehicle,
		Shipped:     normalized.Shipped,
	}

	pred, err := h.API.Predict(r.Context(), middleware.SessionFromContext(r.Context()), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, pred)
}
