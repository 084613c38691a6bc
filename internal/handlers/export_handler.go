package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"shipdash-backend/internal/export"
	"shipdash-backend/internal/middleware"
	"shipdash-backend/internal/services"
	"shipdash-backend/pkg/utils"
)

type ExportHandler struct {
	Service *services.ShipmentService
}

func NewExportHandler(s *services.ShipmentService) *ExportHandler {
	return &ExportHandler{Service: s}
}

// ExportShipments handles GET /api/shipments/export
// Query params: format=csv|pdf plus the same filter params as the list
// endpoint. The export covers the full filtered collection, not the
// current page.
func (h *ExportHandler) ExportShipments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilterState(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "pdf" {
		utils.Error(w, http.StatusBadRequest, "format must be csv or pdf")
		return
	}

	file, err := h.Service.Export(r.Context(), middleware.SessionFromContext(r.Context()), filter, format)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			// Deliberate: no file is produced for an empty view, the
			// client shows a "nothing to export" notice instead.
			utils.Error(w, http.StatusNotFound, "No shipments match the current filters")
			return
		}
		writeUpstreamError(w, err)
		return
	}

	if file.ArchiveKey != "" {
		w.Header().Set("X-Archive-Key", file.ArchiveKey)
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	w.Write(file.Data)
}
