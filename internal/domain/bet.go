package domain

import "time"

type Bet struct {
	ID              string    `json:"id"`
	BettorID        string    `json:"bettor_id"`
	VenueID         string    `json:"venue_id"`
	GameID          string    `json:"game_id"`
	Stake           float64   `json:"stake"`
	CreatedAt       time.Time `json:"created_at"`
	CoBettorIDs     []string  `json:"co_bettor_ids"`
	Won             bool      `json:"won"`
	Settled         bool      `json:"settled"`
	PotentialPayout float64   `json:"potential_payout"`
	ActualPayout    float64   `json:"actual_payout"`
}

// HasCoBettor reports whether the given user is already attached to the bet.
func (b *Bet) HasCoBettor(userID string) bool {
	for _, id := range b.CoBettorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type BetRepository interface {
	// Save inserts a new bet; returns ErrDuplicateRecord if the id exists.
	Save(bet *Bet) error
	// Update rewrites an existing bet; returns ErrBetNotFound if the id is unknown.
	Update(bet *Bet) error
	Delete(id string) error
	DeleteByUser(userID string) error
	FindByID(id string) (*Bet, error)
	FindByUser(userID string) ([]*Bet, error)
	FindAll() ([]*Bet, error)
	FindActive() ([]*Bet, error)
}

type SettlementStats struct {
	Submitted      int64
	Completed      int64
	Failed         int64
	Rejected       int64
	AvgProcessTime time.Duration
	QueueLength    int
	QueueCapacity  int
}

type BetService interface {
	CreateBet(bettorID, venueID, gameID string, stake float64, coBettorIDs []string) (*Bet, error)
	UpdateBet(betID string, newStake float64, newCoBettorIDs []string) (bool, error)
	CancelBet(betID string) (bool, error)
	SettleBet(betID string, won bool) (bool, error)

	AddCoBettor(betID, userID string) (bool, error)
	RemoveCoBettor(betID, userID string) (bool, error)

	GetBet(id string) (*Bet, error)
	GetUserBets(userID string) ([]*Bet, error)
	GetAllBets() ([]*Bet, error)
	GetActiveBets() ([]*Bet, error)

	SettleGameBets(gameID string, won bool) (settled int, failed int, err error)
	GetSettlementStats() (SettlementStats, error)
	Shutdown()
}
