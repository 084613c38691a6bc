package health

import (
	"context"
	"time"

	"shipdash-backend/internal/cache"
	"shipdash-backend/internal/upstream"
)

type HealthChecker struct {
	api *upstream.Client
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Upstream UpstreamHealth `json:"upstream"`
	Cache    CacheHealth    `json:"cache"`
}

type UpstreamHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type CacheHealth struct {
	Status string `json:"status"`
}

func NewHealthChecker(api *upstream.Client) *HealthChecker {
	return &HealthChecker{api: api}
}

// CheckBasic reports overall health. The upstream API is the only hard
// dependency; a degraded cache does not fail the probe.
func (h *HealthChecker) CheckBasic() HealthStatus {
	up := h.checkUpstream()

	status := "healthy"
	if up.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Upstream: up,
		Cache:    h.checkCache(),
	}
}

func (h *HealthChecker) checkUpstream() UpstreamHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.api.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return UpstreamHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	return UpstreamHealth{Status: "healthy", ResponseTime: responseTime}
}

func (h *HealthChecker) checkCache() CacheHealth {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if cache.Healthy(ctx) {
		return CacheHealth{Status: "healthy"}
	}
	return CacheHealth{Status: "degraded"}
}
