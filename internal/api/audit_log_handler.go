package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type AuditLogHandler struct {
	service domain.AuditLogService
	logger  logger.Logger
}

func NewAuditLogHandler(service domain.AuditLogService, logger logger.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuditLogHandler) GetEntityLogs(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entity_type")
	if entityType == "" {
		h.logger.Error("entity_type parametresi eksik", map[string]interface{}{})
		http.Error(w, "entity_type parametresi eksik", http.StatusBadRequest)
		return
	}

	entityID := r.URL.Query().Get("entity_id")
	if entityID == "" {
		h.logger.Error("entity_id parametresi eksik", map[string]interface{}{})
		http.Error(w, "entity_id parametresi eksik", http.StatusBadRequest)
		return
	}

	logs, err := h.service.GetEntityLogs(domain.EntityType(entityType), entityID)
	if err != nil {
		h.logger.Error("Denetim kayıtları alınamadı", map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   entityID,
			"error":       err.Error(),
		})
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

func (h *AuditLogHandler) GetAllLogs(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize := 10
	if sizeStr := r.URL.Query().Get("page_size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed > 0 {
			pageSize = parsed
		}
	}

	logs, err := h.service.GetAllLogs(page, pageSize)
	if err != nil {
		h.logger.Error("Denetim kayıtları alınamadı", map[string]interface{}{"page": page, "error": err.Error()})
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

func (h *AuditLogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/audit-logs/entity", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetEntityLogs(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/audit-logs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetAllLogs(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
