package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"shipdash-backend/internal/auth"
	"shipdash-backend/internal/cache"
	"shipdash-backend/internal/config"
	"shipdash-backend/internal/handlers"
	"shipdash-backend/internal/health"
	h "shipdash-backend/internal/http"
	"shipdash-backend/internal/middleware"
	"shipdash-backend/internal/monitoring"
	"shipdash-backend/internal/services"
	"shipdash-backend/internal/storage"
	"shipdash-backend/internal/upstream"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize Redis cache (optional, degrades gracefully)
	if err := cache.Init(cfg); err != nil {
		log.Printf("WARNING: Redis unavailable, snapshot caching disabled: %v", err)
	} else {
		log.Println("Redis cache initialized")
	}

	// Upstream shipment API client
	api := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)
	log.Printf("Upstream shipment API: %s", cfg.Upstream.BaseURL)

	// Export archive (R2/S3), optional
	archive := storage.NewExportArchive(cfg)
	if archive != nil {
		log.Println("Export archive enabled")
	}

	// JWT validation against the upstream-issued tokens
	jwtManager := auth.NewJWTManager(cfg)

	// Services
	shipmentService := services.NewShipmentService(api, archive, cfg.View.PageSize)

	// Health checker
	healthChecker := health.NewHealthChecker(api)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(api)
	shipmentHandler := handlers.NewShipmentHandler(shipmentService)
	exportHandler := handlers.NewExportHandler(shipmentService)
	predictionHandler := handlers.NewPredictionHandler(api)
	analyticsHandler := handlers.NewAnalyticsHandler(api)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Router
	router := h.NewRouter(
		authHandler,
		shipmentHandler,
		exportHandler,
		predictionHandler,
		analyticsHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Internal monitoring dashboard on its own port
	monitoringServer := monitoring.NewMonitoringServer(api, cfg.Monitoring.Port)
	go monitoringServer.Start()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Shipment dashboard backend running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
