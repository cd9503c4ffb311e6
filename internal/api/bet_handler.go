package api

import (
	"encoding/json"
	"net/http"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type BetHandler struct {
	service domain.BetService
	logger  logger.Logger
}

func NewBetHandler(service domain.BetService, logger logger.Logger) *BetHandler {
	return &BetHandler{
		service: service,
		logger:  logger,
	}
}

type CreateBetRequest struct {
	BettorID    string   `json:"bettor_id"`
	VenueID     string   `json:"venue_id"`
	GameID      string   `json:"game_id"`
	Stake       float64  `json:"stake"`
	CoBettorIDs []string `json:"co_bettor_ids,omitempty"`
}

func (h *BetHandler) CreateBet(w http.ResponseWriter, r *http.Request) {
	var req CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	bet, err := h.service.CreateBet(req.BettorID, req.VenueID, req.GameID, req.Stake, req.CoBettorIDs)
	if err != nil {
		h.logger.Error("Bahis oluşturulamadı", map[string]interface{}{"bettor_id": req.BettorID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(bet)
}

type UpdateBetRequest struct {
	BetID       string   `json:"bet_id"`
	NewStake    float64  `json:"new_stake"`
	CoBettorIDs []string `json:"co_bettor_ids,omitempty"`
}

func (h *BetHandler) UpdateBet(w http.ResponseWriter, r *http.Request) {
	var req UpdateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	changed, err := h.service.UpdateBet(req.BetID, req.NewStake, req.CoBettorIDs)
	if err != nil {
		h.logger.Error("Bahis güncellenemedi", map[string]interface{}{"bet_id": req.BetID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"changed": changed})
}

func (h *BetHandler) CancelBet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.logger.Error("id parametresi eksik", map[string]interface{}{})
		http.Error(w, "id parametresi eksik", http.StatusBadRequest)
		return
	}

	cancelled, err := h.service.CancelBet(id)
	if err != nil {
		h.logger.Error("Bahis iptal edilemedi", map[string]interface{}{"bet_id": id, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"cancelled": cancelled})
}

type SettleBetRequest struct {
	BetID string `json:"bet_id"`
	Won   bool   `json:"won"`
}

func (h *BetHandler) SettleBet(w http.ResponseWriter, r *http.Request) {
	var req SettleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	settled, err := h.service.SettleBet(req.BetID, req.Won)
	if err != nil {
		h.logger.Error("Bahis sonuçlandırılamadı", map[string]interface{}{"bet_id": req.BetID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"settled": settled})
}

type CoBettorRequest struct {
	BetID  string `json:"bet_id"`
	UserID string `json:"user_id"`
}

func (h *BetHandler) AddCoBettor(w http.ResponseWriter, r *http.Request) {
	var req CoBettorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	added, err := h.service.AddCoBettor(req.BetID, req.UserID)
	if err != nil {
		h.logger.Error("Ortak bahisçi eklenemedi", map[string]interface{}{"bet_id": req.BetID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"added": added})
}

func (h *BetHandler) RemoveCoBettor(w http.ResponseWriter, r *http.Request) {
	var req CoBettorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	removed, err := h.service.RemoveCoBettor(req.BetID, req.UserID)
	if err != nil {
		h.logger.Error("Ortak bahisçi çıkarılamadı", map[string]interface{}{"bet_id": req.BetID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"removed": removed})
}

func (h *BetHandler) GetBet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.logger.Error("id parametresi eksik", map[string]interface{}{})
		http.Error(w, "id parametresi eksik", http.StatusBadRequest)
		return
	}

	bet, err := h.service.GetBet(id)
	if err != nil {
		h.logger.Error("Bahis bulunamadı", map[string]interface{}{"bet_id": id, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bet)
}

func (h *BetHandler) GetUserBets(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.logger.Error("user_id parametresi eksik", map[string]interface{}{})
		http.Error(w, "user_id parametresi eksik", http.StatusBadRequest)
		return
	}

	bets, err := h.service.GetUserBets(userID)
	if err != nil {
		h.logger.Error("Kullanıcının bahisleri alınamadı", map[string]interface{}{"user_id": userID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bets)
}

func (h *BetHandler) GetAllBets(w http.ResponseWriter, r *http.Request) {
	bets, err := h.service.GetAllBets()
	if err != nil {
		h.logger.Error("Bahisler alınamadı", map[string]interface{}{"error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bets)
}

func (h *BetHandler) GetActiveBets(w http.ResponseWriter, r *http.Request) {
	bets, err := h.service.GetActiveBets()
	if err != nil {
		h.logger.Error("Aktif bahisler alınamadı", map[string]interface{}{"error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bets)
}

type SettleGameRequest struct {
	GameID string `json:"game_id"`
	Won    bool   `json:"won"`
}

func (h *BetHandler) SettleGameBets(w http.ResponseWriter, r *http.Request) {
	var req SettleGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("İstek gövdesi decode edilemedi", map[string]interface{}{"error": err.Error()})
		http.Error(w, "Geçersiz istek gövdesi", http.StatusBadRequest)
		return
	}

	settled, failed, err := h.service.SettleGameBets(req.GameID, req.Won)
	if err != nil {
		h.logger.Error("Toplu sonuçlandırma başarısız", map[string]interface{}{"game_id": req.GameID, "error": err.Error()})
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"settled": settled, "failed": failed})
}

func (h *BetHandler) GetSettlementStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetSettlementStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (h *BetHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/bets/settle", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.SettleBet(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/bets/settle-game", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.SettleGameBets(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/bets/cobettors", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.AddCoBettor(w, r)
		case http.MethodDelete:
			h.RemoveCoBettor(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/bets/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetUserBets(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/bets/all", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetAllBets(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/bets/active", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetActiveBets(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/bets/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.GetSettlementStats(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/bets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetBet(w, r)
		case http.MethodPost:
			h.CreateBet(w, r)
		case http.MethodPut:
			h.UpdateBet(w, r)
		case http.MethodDelete:
			h.CancelBet(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
