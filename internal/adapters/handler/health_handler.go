package handler

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redisClient *redis.Client
	backendURL  string
	httpClient  *http.Client
	startTime   time.Time
	version     string
}

func NewHealthHandler(redisClient *redis.Client, backendURL string) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		redisClient: redisClient,
		backendURL:  backendURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		startTime:   time.Now(),
		version:     version,
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the Go process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	}
	writeJSON(w, http.StatusOK, response)
}

// Ready checks if the service is ready to accept traffic (readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]Check)
	status := "UP"
	httpStatus := http.StatusOK

	redisCheck := h.checkRedis()
	checks["redis"] = redisCheck
	if redisCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	backendCheck := h.checkBackend()
	checks["backend"] = backendCheck
	if backendCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

// Live is an alias for Health - simple liveness check
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) checkRedis() Check {
	if h.redisClient == nil {
		return Check{
			Status:  "DOWN",
			Message: "Redis client is not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		return Check{
			Status:  "DOWN",
			Message: "Cannot connect to Redis",
		}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkBackend() Check {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.backendURL+"/api/health/", nil)
	if err != nil {
		return Check{Status: "DOWN", Message: "Invalid backend URL"}
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Check{Status: "DOWN", Message: "Cannot reach backend"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		log.Printf("health: backend reported status %d", resp.StatusCode)
		return Check{Status: "DOWN", Message: "Backend is unhealthy"}
	}
	return Check{Status: "UP"}
}
