package api

import (
	"encoding/json"
	"net/http"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type GameHandler struct {
	service domain.GameService
	logger  logger.Logger
}

func NewGameHandler(service domain.GameService, logger logger.Logger) *GameHandler {
	return &GameHandler{
		service: service,
		logger:  logger,
	}
}

type CreateGameRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier"`
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	game, err := h.service.CreateGame(req.Name, req.Description, req.Multiplier)
	if err != nil {
		h.logger.Error("Oyun oluşturulamadı", map[string]interface{}{"name": req.Name, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(game)
}

type UpdateGameRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier"`
}

func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	var req UpdateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	changed, err := h.service.UpdateGame(req.ID, req.Name, req.Description, req.Multiplier)
	if err != nil {
		h.logger.Error("Oyun güncellenemedi", map[string]interface{}{"id": req.ID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"changed": changed})
}

func (h *GameHandler) DeactivateGame(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.logger.Error("id parametresi eksik", map[string]interface{}{})
		http.Error(w, "id parametresi eksik", http.StatusBadRequest)
		return
	}

	if err := h.service.DeactivateGame(id); err != nil {
		h.logger.Error("Oyun devre dışı bırakılamadı", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		games, err := h.service.GetAllGames()
		if err != nil {
			h.logger.Error("Oyunlar alınamadı", map[string]interface{}{"error": err.Error()})
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(games)
		return
	}

	game, err := h.service.GetGame(id)
	if err != nil {
		h.logger.Error("Oyun bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(game)
}

func (h *GameHandler) GetActiveGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.GetActiveGames()
	if err != nil {
		h.logger.Error("Aktif oyunlar alınamadı", map[string]interface{}{"error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(games)
}

func (h *GameHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/games/active", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetActiveGames(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/games", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetGame(w, r)
		case http.MethodPost:
			h.CreateGame(w, r)
		case http.MethodPut:
			h.UpdateGame(w, r)
		case http.MethodDelete:
			h.DeactivateGame(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
