package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"shipdash-backend/internal/cache"
	"shipdash-backend/internal/dataview"
	"shipdash-backend/internal/export"
	"shipdash-backend/internal/form"
	"shipdash-backend/internal/metrics"
	"shipdash-backend/internal/models"
	"shipdash-backend/internal/storage"
	"shipdash-backend/internal/upstream"
)

// ListResult is one rendered page of the shipment table plus the
// pagination facts the client needs to draw the pager.
type ListResult struct {
	Items        []models.Shipment `json:"items"`
	Page         int               `json:"page"`
	PageSize     int               `json:"page_size"`
	TotalPages   int               `json:"total_pages"`
	TotalRecords int               `json:"total_records"`
}

// ExportFile is a generated download artifact.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	ArchiveKey  string
}

// ShipmentService owns the fetch → filter → paginate → export pipeline
// over snapshots pulled from the upstream API.
type ShipmentService struct {
	api      *upstream.Client
	archive  *storage.ExportArchive
	pageSize int
}

func NewShipmentService(api *upstream.Client, archive *storage.ExportArchive, pageSize int) *ShipmentService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &ShipmentService{api: api, archive: archive, pageSize: pageSize}
}

// fetchSnapshot returns the full shipment collection, serving from the
// Redis cache when a fresh copy of the same query is present.
func (s *ShipmentService) fetchSnapshot(ctx context.Context, sess upstream.Session, q upstream.ListQuery) ([]models.Shipment, error) {
	fingerprint := fingerprintQuery(q)
	if records, ok := cache.GetSnapshot(ctx, fingerprint); ok {
		metrics.SnapshotCacheHits.WithLabelValues("hit").Inc()
		return records, nil
	}
	metrics.SnapshotCacheHits.WithLabelValues("miss").Inc()

	records, err := s.api.ListShipments(ctx, sess, q)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("list_shipments", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("list_shipments", "ok").Inc()

	cache.PutSnapshot(ctx, fingerprint, records)
	return records, nil
}

// List fetches a snapshot, applies the filter state and slices out the
// requested page. Page 1 is returned whenever the caller passes a page
// below 1; pages past the end clamp to the last page.
func (s *ShipmentService) List(ctx context.Context, sess upstream.Session, filter dataview.FilterState, page, pageSize int) (*ListResult, error) {
	if pageSize < 1 {
		pageSize = s.pageSize
	}

	records, err := s.fetchSnapshot(ctx, sess, upstream.ListQuery{})
	if err != nil {
		return nil, err
	}

	view := dataview.NewView(pageSize)
	token := view.BeginFetch()
	view.ApplySnapshot(records, token)
	view.SetFilter(filter)
	view.SetPage(page)

	items := view.Rows()
	if items == nil {
		items = []models.Shipment{}
	}

	return &ListResult{
		Items:        items,
		Page:         view.PageIndex(),
		PageSize:     pageSize,
		TotalPages:   view.TotalPages(),
		TotalRecords: len(view.Filtered()),
	}, nil
}

// Export renders the full filtered collection (never just the current
// page) as CSV or PDF. An empty filtered collection yields
// export.ErrNothingToExport and no file.
func (s *ShipmentService) Export(ctx context.Context, sess upstream.Session, filter dataview.FilterState, format string) (*ExportFile, error) {
	records, err := s.fetchSnapshot(ctx, sess, upstream.ListQuery{})
	if err != nil {
		return nil, err
	}

	filtered := dataview.Filter(records, filter)

	var file ExportFile
	switch strings.ToLower(format) {
	case "csv", "":
		data, err := export.CSV(filtered)
		if err != nil {
			return nil, err
		}
		file = ExportFile{Filename: export.Filename("csv"), ContentType: "text/csv", Data: data}
		metrics.ExportsTotal.WithLabelValues("csv").Inc()
	case "pdf":
		data, err := export.PDF(filtered)
		if err != nil {
			return nil, err
		}
		file = ExportFile{Filename: export.Filename("pdf"), ContentType: "application/pdf", Data: data}
		metrics.ExportsTotal.WithLabelValues("pdf").Inc()
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	// Archival is best effort; the download must not fail because the
	// bucket is unreachable.
	if key, err := s.archive.Store(ctx, file.Filename, file.ContentType, file.Data); err != nil {
		log.Printf("[Export] Archive upload failed: %v", err)
	} else {
		file.ArchiveKey = key
	}

	return &file, nil
}

// Create validates and normalizes the form locally, then forwards the
// payload upstream. Validation failures never reach the wire.
func (s *ShipmentService) Create(ctx context.Context, sess upstream.Session, f form.ShipmentForm) (*models.Shipment, error) {
	req, err := f.Validate()
	if err != nil {
		return nil, err
	}

	created, err := s.api.CreateShipment(ctx, sess, req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("create_shipment", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("create_shipment", "ok").Inc()

	cache.InvalidateSnapshots(ctx)
	return created, nil
}

// RecordOutcome forwards a delivery outcome (returned tin count) for
// an existing shipment.
func (s *ShipmentService) RecordOutcome(ctx context.Context, sess upstream.Session, id string, returned int) (*models.Shipment, error) {
	if returned < 0 {
		return nil, fmt.Errorf("returned count cannot be negative")
	}

	updated, err := s.api.UpdateShipment(ctx, sess, id, &models.UpdateShipmentRequest{Returned: returned})
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("update_shipment", "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("update_shipment", "ok").Inc()

	cache.InvalidateSnapshots(ctx)
	return updated, nil
}

func fingerprintQuery(q upstream.ListQuery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "dealer=%d&warehouse=%s&skip=%d&limit=%d", q.DealerCode, q.Warehouse, q.Skip, q.Limit)
	if q.StartDate != nil {
		fmt.Fprintf(&b, "&start=%s", q.StartDate.Format(time.RFC3339))
	}
	if q.EndDate != nil {
		fmt.Fprintf(&b, "&end=%s", q.EndDate.Format(time.RFC3339))
	}
	return b.String()
}
