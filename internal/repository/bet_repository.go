package repository

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type BetRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewBetRepository(db *sql.DB, logger logger.Logger) domain.BetRepository {
	return &BetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BetRepository) Save(bet *domain.Bet) error {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM bets WHERE id = ?`, bet.ID).Scan(&count); err != nil {
		r.logger.Error("Bahis varlık kontrolü yapılamadı", map[string]interface{}{"id": bet.ID, "error": err.Error()})
		return fmt.Errorf("bahis kaydedilemedi: %w", err)
	}

	if count > 0 {
		r.logger.Error("Aynı ID ile bahis zaten mevcut", map[string]interface{}{"id": bet.ID})
		return domain.ErrDuplicateRecord
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("bahis kaydedilemedi: %w", err)
	}
	defer tx.Rollback()

	if bet.CreatedAt.IsZero() {
		bet.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO bets (id, bettor_id, venue_id, game_id, stake, created_at, won, settled, potential_payout, actual_payout)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(
		query,
		bet.ID,
		bet.BettorID,
		bet.VenueID,
		bet.GameID,
		bet.Stake,
		bet.CreatedAt,
		bet.Won,
		bet.Settled,
		bet.PotentialPayout,
		bet.ActualPayout,
	)
	if err != nil {
		r.logger.Error("Bahis oluşturulamadı", map[string]interface{}{"id": bet.ID, "error": err.Error()})
		return fmt.Errorf("bahis kaydedilemedi: %w", err)
	}

	if err = r.insertCoBettors(tx, bet.ID, bet.CoBettorIDs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Bahis kaydı commit edilemedi", map[string]interface{}{"id": bet.ID, "error": err.Error()})
		return fmt.Errorf("bahis kaydedilemedi: %w", err)
	}

	return nil
}

func (r *BetRepository) Update(bet *domain.Bet) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("bahis güncellenemedi: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE bets
		SET stake = ?, won = ?, settled = ?, potential_payout = ?, actual_payout = ?
		WHERE id = ?
	`

	result, err := tx.Exec(
		query,
		bet.Stake,
		bet.Won,
		bet.Settled,
		bet.PotentialPayout,
		bet.ActualPayout,
		bet.ID,
	)
	if err != nil {
		r.logger.Error("Bahis güncellenemedi", map[string]interface{}{"id": bet.ID, "error": err.Error()})
		return fmt.Errorf("bahis güncellenemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return domain.ErrBetNotFound
	}

	if _, err = tx.Exec(`DELETE FROM bet_cobettors WHERE bet_id = ?`, bet.ID); err != nil {
		r.logger.Error("Ortak bahisçiler temizlenemedi", map[string]interface{}{"id": bet.ID, "error": err.Error()})
		return fmt.Errorf("bahis güncellenemedi: %w", err)
	}

	if err = r.insertCoBettors(tx, bet.ID, bet.CoBettorIDs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Bahis güncellemesi commit edilemedi", map[string]interface{}{"id": bet.ID, "error": err.Error()})
		return fmt.Errorf("bahis güncellenemedi: %w", err)
	}

	return nil
}

func (r *BetRepository) insertCoBettors(tx *sql.Tx, betID string, coBettorIDs []string) error {
	for _, userID := range coBettorIDs {
		if _, err := tx.Exec(`INSERT INTO bet_cobettors (bet_id, user_id) VALUES (?, ?)`, betID, userID); err != nil {
			r.logger.Error("Ortak bahisçi eklenemedi", map[string]interface{}{"bet_id": betID, "user_id": userID, "error": err.Error()})
			return fmt.Errorf("ortak bahisçi kaydedilemedi: %w", err)
		}
	}
	return nil
}

func (r *BetRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("bahis silinemedi: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM bet_cobettors WHERE bet_id = ?`, id); err != nil {
		r.logger.Error("Ortak bahisçiler silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("bahis silinemedi: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM bets WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Bahis silinemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("bahis silinemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return domain.ErrBetNotFound
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Bahis silme işlemi commit edilemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("bahis silinemedi: %w", err)
	}

	return nil
}

func (r *BetRepository) DeleteByUser(userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("kullanıcının bahisleri silinemedi: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec(`DELETE FROM bet_cobettors WHERE bet_id IN (SELECT id FROM bets WHERE bettor_id = ?)`, userID); err != nil {
		r.logger.Error("Kullanıcının ortak bahisçi kayıtları silinemedi", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return fmt.Errorf("kullanıcının bahisleri silinemedi: %w", err)
	}

	if _, err = tx.Exec(`DELETE FROM bets WHERE bettor_id = ?`, userID); err != nil {
		r.logger.Error("Kullanıcının bahisleri silinemedi", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return fmt.Errorf("kullanıcının bahisleri silinemedi: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("kullanıcının bahisleri silinemedi: %w", err)
	}

	return nil
}

func (r *BetRepository) FindByID(id string) (*domain.Bet, error) {
	query := `
		SELECT id, bettor_id, venue_id, game_id, stake, created_at, won, settled, potential_payout, actual_payout
		FROM bets
		WHERE id = ?
	`

	var bet domain.Bet
	err := r.db.QueryRow(query, id).Scan(
		&bet.ID,
		&bet.BettorID,
		&bet.VenueID,
		&bet.GameID,
		&bet.Stake,
		&bet.CreatedAt,
		&bet.Won,
		&bet.Settled,
		&bet.PotentialPayout,
		&bet.ActualPayout,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Bahis ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("bahis bulunamadı: %w", err)
	}

	if bet.CoBettorIDs, err = r.loadCoBettors(bet.ID); err != nil {
		return nil, err
	}

	return &bet, nil
}

func (r *BetRepository) loadCoBettors(betID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT user_id FROM bet_cobettors WHERE bet_id = ?`, betID)
	if err != nil {
		r.logger.Error("Ortak bahisçiler okunamadı", map[string]interface{}{"bet_id": betID, "error": err.Error()})
		return nil, fmt.Errorf("ortak bahisçiler okunamadı: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("ortak bahisçiler okunamadı: %w", err)
		}
		ids = append(ids, userID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ortak bahisçiler okunamadı: %w", err)
	}

	return ids, nil
}

func (r *BetRepository) queryBets(query string, args ...interface{}) ([]*domain.Bet, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Bahisler okunamadı", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("bahisler okunamadı: %w", err)
	}
	defer rows.Close()

	bets := make([]*domain.Bet, 0)
	for rows.Next() {
		var bet domain.Bet
		err := rows.Scan(
			&bet.ID,
			&bet.BettorID,
			&bet.VenueID,
			&bet.GameID,
			&bet.Stake,
			&bet.CreatedAt,
			&bet.Won,
			&bet.Settled,
			&bet.PotentialPayout,
			&bet.ActualPayout,
		)
		if err != nil {
			r.logger.Error("Bahis verileri okunamadı", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("bahis verileri okunamadı: %w", err)
		}

		bets = append(bets, &bet)
	}

	if err = rows.Err(); err != nil {
		r.logger.Error("Satır döngüsü sırasında hata oluştu", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("bahis verileri okunamadı: %w", err)
	}

	for _, bet := range bets {
		if bet.CoBettorIDs, err = r.loadCoBettors(bet.ID); err != nil {
			return nil, err
		}
	}

	return bets, nil
}

func (r *BetRepository) FindByUser(userID string) ([]*domain.Bet, error) {
	query := `
		SELECT id, bettor_id, venue_id, game_id, stake, created_at, won, settled, potential_payout, actual_payout
		FROM bets
		WHERE bettor_id = ?
		ORDER BY created_at DESC
	`

	return r.queryBets(query, userID)
}

func (r *BetRepository) FindAll() ([]*domain.Bet, error) {
	query := `
		SELECT id, bettor_id, venue_id, game_id, stake, created_at, won, settled, potential_payout, actual_payout
		FROM bets
		ORDER BY created_at DESC
	`

	return r.queryBets(query)
}

func (r *BetRepository) FindActive() ([]*domain.Bet, error) {
	query := `
		SELECT id, bettor_id, venue_id, game_id, stake, created_at, won, settled, potential_payout, actual_payout
		FROM bets
		WHERE settled = 0
		ORDER BY created_at DESC
	`

	return r.queryBets(query)
}
