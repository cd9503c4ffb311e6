package domain

import "time"

type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Multiplier  float64   `json:"multiplier"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type GameRepository interface {
	Create(game *Game) error
	Update(game *Game) error
	FindByID(id string) (*Game, error)
	FindByName(name string) (*Game, error)
	FindAll() ([]*Game, error)
	FindActive() ([]*Game, error)
}

type GameService interface {
	CreateGame(name, description string, multiplier float64) (*Game, error)
	UpdateGame(id, name, description string, multiplier float64) (bool, error)
	DeactivateGame(id string) error
	GetGame(id string) (*Game, error)
	GetAllGames() ([]*Game, error)
	GetActiveGames() ([]*Game, error)
}
