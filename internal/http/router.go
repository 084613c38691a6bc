package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shipdash-backend/internal/handlers"
	"shipdash-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	shipmentHandler *handlers.ShipmentHandler,
	exportHandler *handlers.ExportHandler,
	predictionHandler *handlers.PredictionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication (proxied to the upstream auth service)
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Shipments
	shipmentsAPI := r.PathPrefix("/api/shipments").Subrouter()
	shipmentsAPI.Use(authMiddleware.Authenticate)
	shipmentsAPI.HandleFunc("", shipmentHandler.ListShipments).Methods("GET")
	shipmentsAPI.HandleFunc("", shipmentHandler.CreateShipment).Methods("POST")
	shipmentsAPI.HandleFunc("/export", exportHandler.ExportShipments).Methods("GET")
	shipmentsAPI.HandleFunc("/{id}", shipmentHandler.RecordOutcome).Methods("PATCH")

	// Protected API routes - Predictions
	predictionsAPI := r.PathPrefix("/api/predictions").Subrouter()
	predictionsAPI.Use(authMiddleware.Authenticate)
	predictionsAPI.HandleFunc("/predict", predictionHandler.Predict).Methods("POST")

	// Protected API routes - Analytics
	analyticsAPI := r.PathPrefix("/api/analytics").Subrouter()
	analyticsAPI.Use(authMiddleware.Authenticate)
	analyticsAPI.HandleFunc("/summary", analyticsHandler.GetSummary).Methods("GET")
	analyticsAPI.HandleFunc("/dashboard", analyticsHandler.GetDashboard).Methods("GET")

	// Protected API routes - Current user
	meAPI := r.PathPrefix("/api/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
