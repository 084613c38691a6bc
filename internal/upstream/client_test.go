package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdash-backend/internal/models"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ops@example.com", creds.Email)

		json.NewEncoder(w).Encode(models.Token{AccessToken: "tok-123", TokenType: "bearer", ExpiresIn: 3600})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	tok, err := client.Login(context.Background(), models.LoginRequest{Email: "ops@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok.AccessToken)
}

func TestListShipmentsSendsQueryAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "NAG", r.URL.Query().Get("warehouse"))
		assert.Equal(t, "7", r.URL.Query().Get("dealer_code"))

		json.NewEncoder(w).Encode([]models.Shipment{{ID: "s1", Warehouse: "NAG"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	got, err := client.ListShipments(context.Background(), Session{Token: "tok-123"}, ListQuery{DealerCode: 7, Warehouse: "NAG"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.ListShipments(context.Background(), Session{Token: "expired"}, ListQuery{})
		assert.ErrorIs(t, err, ErrUnauthorized, "status %d", status)
		srv.Close()
	}
}

func TestRemoteErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "dealer_code must be between 1 and 100"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.CreateShipment(context.Background(), Session{Token: "tok"}, &models.CreateShipmentRequest{})
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnprocessableEntity, remote.StatusCode)
	assert.Equal(t, "dealer_code must be between 1 and 100", remote.Detail)
}

func TestRemoteErrorFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	err := client.Ping(context.Background())

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "upstream exploded", remote.Detail)
}

func TestUpdateShipmentUsesPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/shipments/s42", r.URL.Path)

		var req models.UpdateShipmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.Returned)

		returned := req.Returned
		rate := 0.15
		json.NewEncoder(w).Encode(models.Shipment{ID: "s42", Returned: &returned, DamageRate: &rate})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	updated, err := client.UpdateShipment(context.Background(), Session{Token: "tok"}, "s42", &models.UpdateShipmentRequest{Returned: 3})
	require.NoError(t, err)
	require.NotNil(t, updated.Returned)
	assert.Equal(t, 3, *updated.Returned)
}

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predictions/predict", r.URL.Path)
		json.NewEncoder(w).Encode(models.PredictionResponse{
			PredictedDamageRate: 0.12,
			RiskCategory:        models.RiskHigh,
			IsOverloaded:        true,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	pred, err := client.Predict(context.Background(), Session{Token: "tok"}, &models.PredictionRequest{Vehicle: "Vikram", Shipped: 30})
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, pred.RiskCategory)
	assert.True(t, pred.IsOverloaded)
}

func TestPingHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	assert.NoError(t, client.Ping(context.Background()))
}
