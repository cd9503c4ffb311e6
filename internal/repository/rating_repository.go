package repository

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type RatingRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewRatingRepository(db *sql.DB, logger logger.Logger) domain.RatingRepository {
	return &RatingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RatingRepository) Create(rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, user_id, venue_id, score, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	_, err := r.db.Exec(
		query,
		rating.ID,
		rating.UserID,
		rating.VenueID,
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
		rating.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Değerlendirme oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("değerlendirme oluşturulamadı: %w", err)
	}

	return nil
}

func (r *RatingRepository) Update(rating *domain.Rating) error {
	query := `
		UPDATE ratings
		SET score = ?, comment = ?, updated_at = ?
		WHERE id = ?
	`

	rating.UpdatedAt = time.Now()

	result, err := r.db.Exec(query, rating.Score, rating.Comment, rating.UpdatedAt, rating.ID)
	if err != nil {
		r.logger.Error("Değerlendirme güncellenemedi", map[string]interface{}{"id": rating.ID, "error": err.Error()})
		return fmt.Errorf("değerlendirme güncellenemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return domain.ErrRatingNotFound
	}

	return nil
}

func (r *RatingRepository) FindByID(id string) (*domain.Rating, error) {
	query := `SELECT id, user_id, venue_id, score, comment, created_at, updated_at FROM ratings WHERE id = ?`

	var rating domain.Rating
	err := r.db.QueryRow(query, id).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.VenueID,
		&rating.Score,
		&rating.Comment,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Değerlendirme ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("değerlendirme bulunamadı: %w", err)
	}

	return &rating, nil
}

func (r *RatingRepository) FindByVenue(venueID string) ([]*domain.Rating, error) {
	query := `
		SELECT id, user_id, venue_id, score, comment, created_at, updated_at
		FROM ratings
		WHERE venue_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, venueID)
	if err != nil {
		r.logger.Error("Mekan değerlendirmeleri okunamadı", map[string]interface{}{"venue_id": venueID, "error": err.Error()})
		return nil, fmt.Errorf("mekan değerlendirmeleri okunamadı: %w", err)
	}
	defer rows.Close()

	ratings := make([]*domain.Rating, 0)
	for rows.Next() {
		var rating domain.Rating
		err := rows.Scan(
			&rating.ID,
			&rating.UserID,
			&rating.VenueID,
			&rating.Score,
			&rating.Comment,
			&rating.CreatedAt,
			&rating.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("değerlendirme verileri okunamadı: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("değerlendirme verileri okunamadı: %w", err)
	}

	return ratings, nil
}
