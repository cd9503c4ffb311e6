package service

import (
	"fmt"

	"github.com/google/uuid"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type GameService struct {
	repo   domain.GameRepository
	logger logger.Logger
}

func NewGameService(repo domain.GameRepository, logger logger.Logger) domain.GameService {
	return &GameService{
		repo:   repo,
		logger: logger,
	}
}

func (s *GameService) CreateGame(name, description string, multiplier float64) (*domain.Game, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: oyun adı zorunludur", domain.ErrInvalidRequest)
	}

	existing, err := s.repo.FindByName(name)
	if err != nil {
		s.logger.Error("Oyun adı kontrolü sırasında hata oluştu", map[string]interface{}{"name": name, "error": err.Error()})
		return nil, fmt.Errorf("oyun oluşturulamadı: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: bu oyun adı zaten kullanılıyor: %s", domain.ErrDuplicateRecord, name)
	}

	game := &domain.Game{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Multiplier:  clampMultiplier(multiplier),
		Active:      true,
	}

	if err := s.repo.Create(game); err != nil {
		s.logger.Error("Oyun oluşturulamadı", map[string]interface{}{"name": name, "error": err.Error()})
		return nil, fmt.Errorf("oyun oluşturulamadı: %w", err)
	}

	s.logger.Info("Oyun oluşturuldu", map[string]interface{}{
		"game_id":    game.ID,
		"name":       name,
		"multiplier": game.Multiplier,
	})

	return game, nil
}

func (s *GameService) UpdateGame(id, name, description string, multiplier float64) (bool, error) {
	game, err := s.GetGame(id)
	if err != nil {
		return false, err
	}

	if name != "" && name != game.Name {
		existing, err := s.repo.FindByName(name)
		if err != nil {
			return false, fmt.Errorf("oyun güncellenemedi: %w", err)
		}
		if existing != nil {
			return false, fmt.Errorf("%w: bu oyun adı zaten kullanılıyor: %s", domain.ErrDuplicateRecord, name)
		}
		game.Name = name
	}
	if description != "" {
		game.Description = description
	}
	game.Multiplier = clampMultiplier(multiplier)

	if err := s.repo.Update(game); err != nil {
		s.logger.Error("Oyun güncellenemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return false, fmt.Errorf("oyun güncellenemedi: %w", err)
	}

	return true, nil
}

func (s *GameService) DeactivateGame(id string) error {
	game, err := s.GetGame(id)
	if err != nil {
		return err
	}

	if !game.Active {
		return nil
	}

	game.Active = false
	if err := s.repo.Update(game); err != nil {
		s.logger.Error("Oyun devre dışı bırakılamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("oyun devre dışı bırakılamadı: %w", err)
	}

	s.logger.Info("Oyun devre dışı bırakıldı", map[string]interface{}{"game_id": id})

	return nil
}

func (s *GameService) GetGame(id string) (*domain.Game, error) {
	game, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Oyun bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("oyun bulunamadı: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, id)
	}
	return game, nil
}

func (s *GameService) GetAllGames() ([]*domain.Game, error) {
	games, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("oyunlar getirilemedi: %w", err)
	}
	return games, nil
}

func (s *GameService) GetActiveGames() ([]*domain.Game, error) {
	games, err := s.repo.FindActive()
	if err != nil {
		return nil, fmt.Errorf("aktif oyunlar getirilemedi: %w", err)
	}
	return games, nil
}

// clampMultiplier keeps the payout multiplier at or above 1.0.
func clampMultiplier(multiplier float64) float64 {
	if multiplier < 1.0 {
		return 1.0
	}
	return multiplier
}
