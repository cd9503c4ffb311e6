package domain

import "time"

type LedgerReason string

const (
	LedgerReasonBetCreate  LedgerReason = "bet_create"
	LedgerReasonBetUpdate  LedgerReason = "bet_update"
	LedgerReasonBetCancel  LedgerReason = "bet_cancel"
	LedgerReasonBetSettle  LedgerReason = "bet_settle"
	LedgerReasonRollback   LedgerReason = "rollback"
	LedgerReasonAdjustment LedgerReason = "adjustment"
)

type LedgerEntry struct {
	ID              int64        `json:"id"`
	UserID          string       `json:"user_id"`
	Amount          float64      `json:"amount"`
	PreviousBalance float64      `json:"previous_balance"`
	NewBalance      float64      `json:"new_balance"`
	Reason          LedgerReason `json:"reason"`
	BetID           string       `json:"bet_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

type LedgerRepository interface {
	Create(entry *LedgerEntry) error
	FindByUser(userID string) ([]*LedgerEntry, error)
}

// LedgerService is the only legal path for mutating User.Balance.
type LedgerService interface {
	// ApplyDelta adds amount (negative for a charge) to the user's balance and
	// persists the user. On any failure the in-memory balance is left exactly
	// as it was before the call.
	ApplyDelta(user *User, amount float64, reason LedgerReason, betID string) (float64, error)
	GetUserHistory(userID string) ([]*LedgerEntry, error)
}
