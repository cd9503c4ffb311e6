package api

import (
	"encoding/json"
	"net/http"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type VenueHandler struct {
	service domain.VenueService
	logger  logger.Logger
}

func NewVenueHandler(service domain.VenueService, logger logger.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		logger:  logger,
	}
}

type CreateVenueRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req CreateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	venue, err := h.service.CreateVenue(req.Name, req.Address, req.Description)
	if err != nil {
		h.logger.Error("Mekan oluşturulamadı", map[string]interface{}{"name": req.Name, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(venue)
}

func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		venues, err := h.service.GetAllVenues()
		if err != nil {
			h.logger.Error("Mekanlar alınamadı", map[string]interface{}{"error": err.Error()})
			http.Error(w, err.Error(), statusForError(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(venues)
		return
	}

	venue, err := h.service.GetVenue(id)
	if err != nil {
		h.logger.Error("Mekan bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(venue)
}

type VenueMemberRequest struct {
	VenueID string `json:"venue_id"`
	UserID  string `json:"user_id"`
}

func (h *VenueHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req VenueMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	if err := h.service.RegisterUser(req.VenueID, req.UserID); err != nil {
		h.logger.Error("Kullanıcı mekana kaydedilemedi", map[string]interface{}{"venue_id": req.VenueID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

type VenueGameRequest struct {
	VenueID string `json:"venue_id"`
	GameID  string `json:"game_id"`
}

func (h *VenueHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	var req VenueGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	if err := h.service.AddGame(req.VenueID, req.GameID); err != nil {
		h.logger.Error("Oyun mekana eklenemedi", map[string]interface{}{"venue_id": req.VenueID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

func (h *VenueHandler) GetVenueGames(w http.ResponseWriter, r *http.Request) {
	venueID := r.URL.Query().Get("venue_id")
	if venueID == "" {
		h.logger.Error("venue_id parametresi eksik", map[string]interface{}{})
		http.Error(w, "venue_id parametresi eksik", http.StatusBadRequest)
		return
	}

	games, err := h.service.GetVenueGames(venueID)
	if err != nil {
		h.logger.Error("Mekanın oyunları alınamadı", map[string]interface{}{"venue_id": venueID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(games)
}

type RateVenueRequest struct {
	UserID  string `json:"user_id"`
	VenueID string `json:"venue_id"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

func (h *VenueHandler) RateVenue(w http.ResponseWriter, r *http.Request) {
	var req RateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	rating, err := h.service.RateVenue(req.UserID, req.VenueID, req.Score, req.Comment)
	if err != nil {
		h.logger.Error("Değerlendirme oluşturulamadı", map[string]interface{}{"venue_id": req.VenueID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rating)
}

type UpdateRatingRequest struct {
	RatingID string `json:"rating_id"`
	Score    int    `json:"score"`
	Comment  string `json:"comment"`
}

func (h *VenueHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	var req UpdateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	changed, err := h.service.UpdateRating(req.RatingID, req.Score, req.Comment)
	if err != nil {
		h.logger.Error("Değerlendirme güncellenemedi", map[string]interface{}{"rating_id": req.RatingID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"changed": changed})
}

func (h *VenueHandler) GetVenueRatings(w http.ResponseWriter, r *http.Request) {
	venueID := r.URL.Query().Get("venue_id")
	if venueID == "" {
		h.logger.Error("venue_id parametresi eksik", map[string]interface{}{})
		http.Error(w, "venue_id parametresi eksik", http.StatusBadRequest)
		return
	}

	ratings, err := h.service.GetVenueRatings(venueID)
	if err != nil {
		h.logger.Error("Değerlendirmeler alınamadı", map[string]interface{}{"venue_id": venueID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ratings)
}

func (h *VenueHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/venues/members", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.RegisterUser(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/venues/games", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetVenueGames(w, r)
		case http.MethodPost:
			h.AddGame(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/venues/ratings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetVenueRatings(w, r)
		case http.MethodPost:
			h.RateVenue(w, r)
		case http.MethodPut:
			h.UpdateRating(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/venues", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetVenue(w, r)
		case http.MethodPost:
			h.CreateVenue(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
