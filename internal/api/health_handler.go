package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"apunab/pkg/cache"
	"apunab/pkg/logger"
)

type HealthHandler struct {
	db          *sql.DB
	redisClient *redis.Client
	cache       cache.Cache
	logger      logger.Logger
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Services  map[string]interface{} `json:"services"`
	Version   string                 `json:"version"`
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client, cacheInstance cache.Cache, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		cache:       cacheInstance,
		logger:      logger,
	}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	services := make(map[string]interface{})
	services["database"] = h.checkDatabaseHealth()
	services["redis"] = h.checkRedisHealth()
	services["cache"] = h.checkCacheHealth()

	status := "healthy"
	for _, service := range services {
		if serviceMap, ok := service.(map[string]interface{}); ok {
			if serviceStatus, exists := serviceMap["status"]; exists {
				if serviceStatus != "healthy" {
					status = "degraded"
					break
				}
			}
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
		Version:   "1.0.0",
	}

	if status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthHandler) checkDatabaseHealth() map[string]interface{} {
	if h.db == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "database connection is nil",
		}
	}

	if err := h.db.Ping(); err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	stats := h.db.Stats()
	return map[string]interface{}{
		"status":           "healthy",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	}
}

func (h *HealthHandler) checkRedisHealth() map[string]interface{} {
	if h.redisClient == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "redis client is nil",
		}
	}

	if _, err := h.redisClient.Ping(context.Background()).Result(); err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	poolStats := h.redisClient.PoolStats()
	return map[string]interface{}{
		"status":      "healthy",
		"hits":        poolStats.Hits,
		"misses":      poolStats.Misses,
		"total_conns": poolStats.TotalConns,
		"idle_conns":  poolStats.IdleConns,
	}
}

func (h *HealthHandler) checkCacheHealth() map[string]interface{} {
	if h.cache == nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  "cache is nil",
		}
	}

	if err := h.cache.Ping(context.Background()); err != nil {
		return map[string]interface{}{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	return map[string]interface{}{
		"status": "healthy",
	}
}

func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ready := true
	issues := make([]string, 0)

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			ready = false
			issues = append(issues, "database: "+err.Error())
		}
	} else {
		ready = false
		issues = append(issues, "database: connection is nil")
	}

	if h.redisClient != nil {
		if _, err := h.redisClient.Ping(r.Context()).Result(); err != nil {
			ready = false
			issues = append(issues, "redis: "+err.Error())
		}
	} else {
		ready = false
		issues = append(issues, "redis: client is nil")
	}

	response := map[string]interface{}{
		"timestamp": time.Now(),
	}

	if ready {
		response["status"] = "ready"
		w.WriteHeader(http.StatusOK)
	} else {
		response["status"] = "not_ready"
		response["issues"] = issues
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/live", h.LivenessCheck)
	mux.HandleFunc("/health/ready", h.ReadinessCheck)
}
