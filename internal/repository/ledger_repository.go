package repository

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type LedgerRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewLedgerRepository(db *sql.DB, logger logger.Logger) domain.LedgerRepository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LedgerRepository) Create(entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (user_id, amount, previous_balance, new_balance, reason, bet_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	entry.CreatedAt = time.Now()

	var betID interface{}
	if entry.BetID != "" {
		betID = entry.BetID
	}

	result, err := r.db.Exec(
		query,
		entry.UserID,
		entry.Amount,
		entry.PreviousBalance,
		entry.NewBalance,
		string(entry.Reason),
		betID,
		entry.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Bakiye hareketi kaydedilemedi", map[string]interface{}{"user_id": entry.UserID, "error": err.Error()})
		return fmt.Errorf("bakiye hareketi kaydedilemedi: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}

	return nil
}

func (r *LedgerRepository) FindByUser(userID string) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT id, user_id, amount, previous_balance, new_balance, reason, bet_id, created_at
		FROM ledger_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		r.logger.Error("Bakiye hareketleri okunamadı", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil, fmt.Errorf("bakiye hareketleri okunamadı: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.LedgerEntry, 0)
	for rows.Next() {
		var entry domain.LedgerEntry
		var reason string
		var betID sql.NullString

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Amount,
			&entry.PreviousBalance,
			&entry.NewBalance,
			&reason,
			&betID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("bakiye hareketi verileri okunamadı: %w", err)
		}

		entry.Reason = domain.LedgerReason(reason)
		if betID.Valid {
			entry.BetID = betID.String
		}

		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("bakiye hareketi verileri okunamadı: %w", err)
	}

	return entries, nil
}
