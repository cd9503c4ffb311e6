package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"apunab/pkg/cache"
	"apunab/pkg/logger"
)

type CacheHandler struct {
	cache  cache.Cache
	logger logger.Logger
}

type CacheInvalidateRequest struct {
	Pattern  *string  `json:"pattern,omitempty"`
	Keys     []string `json:"keys,omitempty"`
	BetID    *string  `json:"bet_id,omitempty"`
	BettorID *string  `json:"bettor_id,omitempty"`
}

func NewCacheHandler(cacheInstance cache.Cache, logger logger.Logger) *CacheHandler {
	return &CacheHandler{
		cache:  cacheInstance,
		logger: logger,
	}
}

func (h *CacheHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/cache/invalidate", h.handleInvalidate)
	mux.HandleFunc("/api/cache/health", h.handleHealth)
}

func (h *CacheHandler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CacheInvalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	ctx := context.Background()
	var err error

	switch {
	case req.Pattern != nil:
		err = h.cache.DeletePattern(ctx, *req.Pattern)
	case len(req.Keys) > 0:
		err = h.cache.DeleteMultiple(ctx, req.Keys)
	case req.BetID != nil:
		bettorID := ""
		if req.BettorID != nil {
			bettorID = *req.BettorID
		}
		err = cache.InvalidateBetCache(ctx, h.cache, *req.BetID, bettorID)
	default:
		http.Error(w, "pattern, keys veya bet_id verilmelidir", http.StatusBadRequest)
		return
	}

	if err != nil {
		h.logger.Error("Cache invalidation hatası", map[string]interface{}{"error": err.Error()})
		http.Error(w, fmt.Sprintf("Önbellek temizlenemedi: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "success",
		"timestamp": time.Now(),
	})
}

func (h *CacheHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"timestamp": time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := h.cache.Ping(context.Background()); err != nil {
		response["status"] = "unhealthy"
		response["error"] = err.Error()
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(response)
		return
	}

	response["status"] = "healthy"
	json.NewEncoder(w).Encode(response)
}
