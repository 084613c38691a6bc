// Package upstream talks to the shipment damage API — the remote
// collaborator that owns the shipment store, the prediction model and
// the analytics aggregation. This service never persists anything
// itself; every record collection is a snapshot fetched from here.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shipdash-backend/internal/models"
)

// ErrUnauthorized means the session token was missing, expired or
// rejected by the collaborator.
var ErrUnauthorized = errors.New("upstream rejected the session token")

// RemoteError carries the collaborator's rejection verbatim; the
// detail string is surfaced to the user unchanged.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Detail)
}

// Session is the explicit session context injected into every call.
// It replaces ambient token globals: whoever handles the user request
// builds a Session from the bearer token and passes it down.
type Session struct {
	Token string
}

// ListQuery narrows the server-side shipment listing. All fields are
// optional; the zero query fetches everything the API will return.
type ListQuery struct {
	DealerCode int
	Warehouse  string
	StartDate  *time.Time
	EndDate    *time.Time
	Skip       int
	Limit      int
}

// Client is the HTTP client for the collaborator API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a bearer token at POST /auth/login.
func (c *Client) Login(ctx context.Context, creds models.LoginRequest) (*models.Token, error) {
	var tok models.Token
	if err := c.do(ctx, Session{}, http.MethodPost, "/auth/login", nil, creds, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// ListShipments fetches a shipment snapshot from GET /shipments.
func (c *Client) ListShipments(ctx context.Context, sess Session, q ListQuery) ([]models.Shipment, error) {
	params := url.Values{}
	if q.DealerCode > 0 {
		params.Set("dealer_code", strconv.Itoa(q.DealerCode))
	}
	if q.Warehouse != "" {
		params.Set("warehouse", q.Warehouse)
	}
	if q.StartDate != nil {
		params.Set("start_date", q.StartDate.Format(time.RFC3339))
	}
	if q.EndDate != nil {
		params.Set("end_date", q.EndDate.Format(time.RFC3339))
	}
	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var shipments []models.Shipment
	if err := c.do(ctx, sess, http.MethodGet, "/shipments", params, nil, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// CreateShipment forwards a validated create request to POST /shipments.
func (c *Client) CreateShipment(ctx context.Context, sess Session, req *models.CreateShipmentRequest) (*models.Shipment, error) {
	var created models.Shipment
	if err := c.do(ctx, sess, http.MethodPost, "/shipments", nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateShipment records the delivery outcome via PATCH /shipments/{id}.
func (c *Client) UpdateShipment(ctx context.Context, sess Session, id string, req *models.UpdateShipmentRequest) (*models.Shipment, error) {
	var updated models.Shipment
	if err := c.do(ctx, sess, http.MethodPatch, "/shipments/"+url.PathEscape(id), nil, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Predict requests a damage forecast from POST /predictions/predict.
func (c *Client) Predict(ctx context.Context, sess Session, req *models.PredictionRequest) (*models.PredictionResponse, error) {
	var pred models.PredictionResponse
	if err := c.do(ctx, sess, http.MethodPost, "/predictions/predict", nil, req, &pred); err != nil {
		return nil, err
	}
	return &pred, nil
}

// AnalyticsSummary fetches GET /analytics/summary for the optional window.
func (c *Client) AnalyticsSummary(ctx context.Context, sess Session, start, end *time.Time) (*models.AnalyticsSummary, error) {
	params := url.Values{}
	if start != nil {
		params.Set("start_date", start.Format(time.RFC3339))
	}
	if end != nil {
		params.Set("end_date", end.Format(time.RFC3339))
	}

	var summary models.AnalyticsSummary
	if err := c.do(ctx, sess, http.MethodGet, "/analytics/summary", params, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Dashboard fetches the combined analytics payload from GET /analytics/dashboard.
func (c *Client) Dashboard(ctx context.Context, sess Session) (*models.DashboardData, error) {
	var data models.DashboardData
	if err := c.do(ctx, sess, http.MethodGet, "/analytics/dashboard", nil, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Ping probes the collaborator's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, Session{}, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, sess Session, method, path string, params url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return &RemoteError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}

// readDetail extracts the collaborator's human-readable detail string,
// falling back to the raw body.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return "request rejected"
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}
	return string(raw)
}
