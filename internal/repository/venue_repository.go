package repository

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type VenueRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewVenueRepository(db *sql.DB, logger logger.Logger) domain.VenueRepository {
	return &VenueRepository{
		db:     db,
		logger: logger,
	}
}

func (r *VenueRepository) Create(venue *domain.Venue) error {
	query := `
		INSERT INTO venues (id, name, address, description, average_rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	venue.CreatedAt = time.Now()

	_, err := r.db.Exec(
		query,
		venue.ID,
		venue.Name,
		venue.Address,
		venue.Description,
		venue.AverageRating,
		venue.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Mekan oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("mekan oluşturulamadı: %w", err)
	}

	return nil
}

func (r *VenueRepository) Update(venue *domain.Venue) error {
	query := `
		UPDATE venues
		SET name = ?, address = ?, description = ?, average_rating = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(
		query,
		venue.Name,
		venue.Address,
		venue.Description,
		venue.AverageRating,
		venue.ID,
	)

	if err != nil {
		r.logger.Error("Mekan güncellenemedi", map[string]interface{}{"id": venue.ID, "error": err.Error()})
		return fmt.Errorf("mekan güncellenemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return domain.ErrVenueNotFound
	}

	return nil
}

func (r *VenueRepository) FindByID(id string) (*domain.Venue, error) {
	query := `SELECT id, name, address, description, average_rating, created_at FROM venues WHERE id = ?`

	var venue domain.Venue
	err := r.db.QueryRow(query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.Description,
		&venue.AverageRating,
		&venue.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Mekan ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("mekan bulunamadı: %w", err)
	}

	return &venue, nil
}

func (r *VenueRepository) FindAll() ([]*domain.Venue, error) {
	query := `SELECT id, name, address, description, average_rating, created_at FROM venues ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Mekanlar okunamadı", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("mekanlar okunamadı: %w", err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		var venue domain.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.Description,
			&venue.AverageRating,
			&venue.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("mekan verileri okunamadı: %w", err)
		}
		venues = append(venues, &venue)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("mekan verileri okunamadı: %w", err)
	}

	return venues, nil
}

func (r *VenueRepository) RegisterUser(venueID, userID string) error {
	query := `INSERT OR IGNORE INTO venue_members (venue_id, user_id) VALUES (?, ?)`

	_, err := r.db.Exec(query, venueID, userID)
	if err != nil {
		r.logger.Error("Kullanıcı mekana kaydedilemedi", map[string]interface{}{"venue_id": venueID, "user_id": userID, "error": err.Error()})
		return fmt.Errorf("kullanıcı mekana kaydedilemedi: %w", err)
	}

	return nil
}

func (r *VenueRepository) FindMemberIDs(venueID string) ([]string, error) {
	return r.queryIDs(`SELECT user_id FROM venue_members WHERE venue_id = ?`, venueID)
}

func (r *VenueRepository) AddGame(venueID, gameID string) error {
	query := `INSERT OR IGNORE INTO venue_games (venue_id, game_id) VALUES (?, ?)`

	_, err := r.db.Exec(query, venueID, gameID)
	if err != nil {
		r.logger.Error("Oyun mekana eklenemedi", map[string]interface{}{"venue_id": venueID, "game_id": gameID, "error": err.Error()})
		return fmt.Errorf("oyun mekana eklenemedi: %w", err)
	}

	return nil
}

func (r *VenueRepository) FindGameIDs(venueID string) ([]string, error) {
	return r.queryIDs(`SELECT game_id FROM venue_games WHERE venue_id = ?`, venueID)
}

func (r *VenueRepository) queryIDs(query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Mekan ilişkileri okunamadı", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("mekan ilişkileri okunamadı: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("mekan ilişkileri okunamadı: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("mekan ilişkileri okunamadı: %w", err)
	}

	return ids, nil
}
