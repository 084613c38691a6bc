package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"shipdash-backend/internal/cache"
	"shipdash-backend/internal/upstream"
)

// MonitoringServer exposes an internal ops endpoint (default :9090) with
// process/system stats, upstream reachability and a WebSocket alert feed.
type MonitoringServer struct {
	api        *upstream.Client
	port       int
	startedAt  time.Time
	alerts     []Alert
	alertsMux  sync.RWMutex
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Alert
}

type Alert struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Resolved  bool      `json:"resolved"`
}

type DashboardStats struct {
	UpstreamStatus   string  `json:"upstream_status"`
	UpstreamLatency  int64   `json:"upstream_latency_ms"`
	CacheStatus      string  `json:"cache_status"`
	ActiveAlerts     int     `json:"active_alerts"`
	CPUPercent       float64 `json:"cpu_percent"`
	MemoryPercent    float64 `json:"memory_percent"`
	DiskPercent      float64 `json:"disk_percent"`
	MemoryUsed       string  `json:"memory_used"`
	MemoryTotal      string  `json:"memory_total"`
	DiskUsed         string  `json:"disk_used"`
	DiskTotal        string  `json:"disk_total"`
	Uptime           string  `json:"uptime"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewMonitoringServer(api *upstream.Client, port int) *MonitoringServer {
	return &MonitoringServer{
		api:       api,
		port:      port,
		startedAt: time.Now(),
		alerts:    make([]Alert, 0),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Alert),
	}
}

func (ms *MonitoringServer) Start() {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", ms.getStats).Methods("GET")
	r.HandleFunc("/api/alerts", ms.getAlerts).Methods("GET")
	r.HandleFunc("/api/test-alert", ms.createTestAlert).Methods("POST")

	// WebSocket for real-time alert updates
	r.HandleFunc("/ws", ms.handleWebSocket)

	go ms.handleBroadcast()
	go ms.monitorHealth()

	addr := fmt.Sprintf(":%d", ms.port)
	log.Printf("[Monitoring] dashboard running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func (ms *MonitoringServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats := ms.collectStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (ms *MonitoringServer) collectStats() DashboardStats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := ms.api.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	upstreamStatus := "healthy"
	if err != nil {
		upstreamStatus = "unhealthy"
	}

	cacheStatus := "healthy"
	if !cache.Healthy(ctx) {
		cacheStatus = "degraded"
	}

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	ms.alertsMux.RLock()
	activeAlertCount := 0
	for _, alert := range ms.alerts {
		if !alert.Resolved {
			activeAlertCount++
		}
	}
	ms.alertsMux.RUnlock()

	return DashboardStats{
		UpstreamStatus:  upstreamStatus,
		UpstreamLatency: latency,
		CacheStatus:     cacheStatus,
		ActiveAlerts:    activeAlertCount,
		CPUPercent:      cpuPercent,
		MemoryPercent:   memStats.UsedPercent,
		DiskPercent:     diskStats.UsedPercent,
		MemoryUsed:      formatBytes(memStats.Used),
		MemoryTotal:     formatBytes(memStats.Total),
		DiskUsed:        formatBytes(diskStats.Used),
		DiskTotal:       formatBytes(diskStats.Total),
		Uptime:          formatUptime(int(time.Since(ms.startedAt).Seconds())),
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (ms *MonitoringServer) getAlerts(w http.ResponseWriter, r *http.Request) {
	ms.alertsMux.RLock()
	defer ms.alertsMux.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ms.alerts)
}

func (ms *MonitoringServer) createTestAlert(w http.ResponseWriter, r *http.Request) {
	var alert Alert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ms.addAlert(&alert)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(alert)
}

func (ms *MonitoringServer) addAlert(alert *Alert) {
	ms.alertsMux.Lock()
	alert.ID = len(ms.alerts) + 1
	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now()
	}
	ms.alerts = append(ms.alerts, *alert)
	ms.alertsMux.Unlock()

	ms.broadcast <- *alert
}

func (ms *MonitoringServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Monitoring] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	ms.clientsMux.Lock()
	ms.clients[conn] = true
	ms.clientsMux.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			ms.clientsMux.Lock()
			delete(ms.clients, conn)
			ms.clientsMux.Unlock()
			break
		}
	}
}

func (ms *MonitoringServer) handleBroadcast() {
	for alert := range ms.broadcast {
		ms.clientsMux.Lock()
		for client := range ms.clients {
			err := client.WriteJSON(alert)
			if err != nil {
				client.Close()
				delete(ms.clients, client)
			}
		}
		ms.clientsMux.Unlock()
	}
}

func (ms *MonitoringServer) monitorHealth() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := ms.collectStats()

		if stats.UpstreamStatus == "unhealthy" {
			ms.addAlert(&Alert{
				Severity: "critical",
				Type:     "upstream_down",
				Message:  "Shipment API is unreachable",
			})
		}

		if stats.UpstreamLatency > 1000 {
			ms.addAlert(&Alert{
				Severity: "warning",
				Type:     "high_latency",
				Message:  fmt.Sprintf("Shipment API response time: %dms", stats.UpstreamLatency),
			})
		}
	}
}
