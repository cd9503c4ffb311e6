package repository

import (
	"database/sql"
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type GameRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewGameRepository(db *sql.DB, logger logger.Logger) domain.GameRepository {
	return &GameRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GameRepository) Create(game *domain.Game) error {
	query := `
		INSERT INTO games (id, name, description, multiplier, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	game.CreatedAt = time.Now()

	_, err := r.db.Exec(
		query,
		game.ID,
		game.Name,
		game.Description,
		game.Multiplier,
		game.Active,
		game.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Oyun oluşturulamadı", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("oyun oluşturulamadı: %w", err)
	}

	return nil
}

func (r *GameRepository) Update(game *domain.Game) error {
	query := `
		UPDATE games
		SET name = ?, description = ?, multiplier = ?, active = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(
		query,
		game.Name,
		game.Description,
		game.Multiplier,
		game.Active,
		game.ID,
	)

	if err != nil {
		r.logger.Error("Oyun güncellenemedi", map[string]interface{}{"id": game.ID, "error": err.Error()})
		return fmt.Errorf("oyun güncellenemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return domain.ErrGameNotFound
	}

	return nil
}

func (r *GameRepository) scanGame(row *sql.Row) (*domain.Game, error) {
	var game domain.Game
	err := row.Scan(
		&game.ID,
		&game.Name,
		&game.Description,
		&game.Multiplier,
		&game.Active,
		&game.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) FindByID(id string) (*domain.Game, error) {
	query := `SELECT id, name, description, multiplier, active, created_at FROM games WHERE id = ?`

	game, err := r.scanGame(r.db.QueryRow(query, id))
	if err != nil {
		r.logger.Error("Oyun ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("oyun bulunamadı: %w", err)
	}

	return game, nil
}

func (r *GameRepository) FindByName(name string) (*domain.Game, error) {
	query := `SELECT id, name, description, multiplier, active, created_at FROM games WHERE name = ?`

	game, err := r.scanGame(r.db.QueryRow(query, name))
	if err != nil {
		r.logger.Error("Oyun adına göre bulunamadı", map[string]interface{}{"name": name, "error": err.Error()})
		return nil, fmt.Errorf("oyun bulunamadı: %w", err)
	}

	return game, nil
}

func (r *GameRepository) queryGames(query string, args ...interface{}) ([]*domain.Game, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Oyunlar okunamadı", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("oyunlar okunamadı: %w", err)
	}
	defer rows.Close()

	games := make([]*domain.Game, 0)
	for rows.Next() {
		var game domain.Game
		err := rows.Scan(
			&game.ID,
			&game.Name,
			&game.Description,
			&game.Multiplier,
			&game.Active,
			&game.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("oyun verileri okunamadı: %w", err)
		}
		games = append(games, &game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("oyun verileri okunamadı: %w", err)
	}

	return games, nil
}

func (r *GameRepository) FindAll() ([]*domain.Game, error) {
	return r.queryGames(`SELECT id, name, description, multiplier, active, created_at FROM games ORDER BY name`)
}

func (r *GameRepository) FindActive() ([]*domain.Game, error) {
	return r.queryGames(`SELECT id, name, description, multiplier, active, created_at FROM games WHERE active = 1 ORDER BY name`)
}
