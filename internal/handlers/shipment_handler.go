package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"shipdash-backend/internal/dataview"
	"shipdash-backend/internal/form"
	"shipdash-backend/internal/middleware"
	"shipdash-backend/internal/services"
	"shipdash-backend/internal/timeutil"
	"shipdash-backend/internal/upstream"
	"shipdash-backend/pkg/utils"
)

type ShipmentHandler struct {
	Service *services.ShipmentService
}

func NewShipmentHandler(s *services.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{Service: s}
}

// ListShipments handles GET /api/shipments
// Query params: q, start, end (YYYY-MM-DD), warehouse, vehicle, page, page_size
func (h *ShipmentHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterState(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.Service.List(r.Context(), middleware.SessionFromContext(r.Context()), filter, page, pageSize)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// CreateShipment handles POST /api/shipments
func (h *ShipmentHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	var f form.ShipmentForm
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), middleware.SessionFromContext(r.Context()), f)
	if err != nil {
		if isValidationError(err) {
			utils.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, created)
}

// RecordOutcome handles PATCH /api/shipments/{id}
func (h *ShipmentHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Returned int `json:"returned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.RecordOutcome(r.Context(), middleware.SessionFromContext(r.Context()), id, req.Returned)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, updated)
}

// parseFilterState builds the filter from query params. A bare
// calendar-day end bound is widened to its end-of-day instant here —
// the matcher itself compares full instants only.
func parseFilterState(r *http.Request) (dataview.FilterState, error) {
	q := r.URL.Query()

	filter := dataview.EmptyFilter()
	filter.Query = q.Get("q")
	if w := q.Get("warehouse"); w != "" {
		filter.Warehouse = w
	}
	if v := q.Get("vehicle"); v != "" {
		filter.Vehicle = v
	}

	if raw := q.Get("start"); raw != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, raw, timeutil.IST)
		if err != nil {
			return filter, errors.New("invalid start date, use YYYY-MM-DD")
		}
		start := timeutil.StartOfDay(t)
		filter.Start = &start
	}
	if raw := q.Get("end"); raw != "" {
		t, err := time.ParseInLocation(timeutil.DateLayout, raw, timeutil.IST)
		if err != nil {
			return filter, errors.New("invalid end date, use YYYY-MM-DD")
		}
		end := timeutil.EndOfDay(t)
		filter.End = &end
	}

	return filter, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, form.ErrInvalidProductCode) ||
		errors.Is(err, form.ErrDealerCodeOutOfRange) ||
		errors.Is(err, form.ErrInvalidShippedQuantity) ||
		errors.Is(err, form.ErrInvalidWarehouse) ||
		errors.Is(err, form.ErrInvalidVehicle) ||
		errors.Is(err, form.ErrInvalidDate)
}

// writeUpstreamError maps collaborator failures onto this service's
// responses: remote rejections keep their status and detail verbatim,
// auth failures become 401, everything else is a 502.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var remote *upstream.RemoteError
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		utils.Error(w, http.StatusUnauthorized, "Session expired, please log in again")
	case errors.As(err, &remote):
		utils.Error(w, remote.StatusCode, remote.Detail)
	default:
		utils.Error(w, http.StatusBadGateway, err.Error())
	}
}
