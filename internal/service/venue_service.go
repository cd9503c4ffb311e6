package service

import (
	"fmt"

	"github.com/google/uuid"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

type VenueService struct {
	repo       domain.VenueRepository
	ratingRepo domain.RatingRepository
	userRepo   domain.UserRepository
	gameRepo   domain.GameRepository
	logger     logger.Logger
}

func NewVenueService(
	repo domain.VenueRepository,
	ratingRepo domain.RatingRepository,
	userRepo domain.UserRepository,
	gameRepo domain.GameRepository,
	logger logger.Logger,
) domain.VenueService {
	return &VenueService{
		repo:       repo,
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		gameRepo:   gameRepo,
		logger:     logger,
	}
}

func (s *VenueService) CreateVenue(name, address, description string) (*domain.Venue, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: mekan adı zorunludur", domain.ErrInvalidRequest)
	}

	venue := &domain.Venue{
		ID:          uuid.NewString(),
		Name:        name,
		Address:     address,
		Description: description,
	}

	if err := s.repo.Create(venue); err != nil {
		s.logger.Error("Mekan oluşturulamadı", map[string]interface{}{"name": name, "error": err.Error()})
		return nil, fmt.Errorf("mekan oluşturulamadı: %w", err)
	}

	s.logger.Info("Mekan oluşturuldu", map[string]interface{}{"venue_id": venue.ID, "name": name})

	return venue, nil
}

func (s *VenueService) GetVenue(id string) (*domain.Venue, error) {
	venue, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Mekan bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("mekan bulunamadı: %w", err)
	}
	if venue == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVenueNotFound, id)
	}
	return venue, nil
}

func (s *VenueService) GetAllVenues() ([]*domain.Venue, error) {
	venues, err := s.repo.FindAll()
	if err != nil {
		s.logger.Error("Mekanlar getirilemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("mekanlar getirilemedi: %w", err)
	}
	return venues, nil
}

func (s *VenueService) RegisterUser(venueID, userID string) error {
	venue, err := s.GetVenue(venueID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("kullanıcı getirilemedi: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	if err := s.repo.RegisterUser(venue.ID, user.ID); err != nil {
		s.logger.Error("Kullanıcı mekana kaydedilemedi", map[string]interface{}{
			"venue_id": venueID,
			"user_id":  userID,
			"error":    err.Error(),
		})
		return fmt.Errorf("kullanıcı mekana kaydedilemedi: %w", err)
	}

	s.logger.Info("Kullanıcı mekana kaydedildi", map[string]interface{}{"venue_id": venueID, "user_id": userID})

	return nil
}

func (s *VenueService) AddGame(venueID, gameID string) error {
	venue, err := s.GetVenue(venueID)
	if err != nil {
		return err
	}

	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		return fmt.Errorf("oyun getirilemedi: %w", err)
	}
	if game == nil {
		return fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}

	if err := s.repo.AddGame(venue.ID, game.ID); err != nil {
		s.logger.Error("Oyun mekana eklenemedi", map[string]interface{}{
			"venue_id": venueID,
			"game_id":  gameID,
			"error":    err.Error(),
		})
		return fmt.Errorf("oyun mekana eklenemedi: %w", err)
	}

	s.logger.Info("Oyun mekana eklendi", map[string]interface{}{"venue_id": venueID, "game_id": gameID})

	return nil
}

func (s *VenueService) GetVenueGames(venueID string) ([]*domain.Game, error) {
	if _, err := s.GetVenue(venueID); err != nil {
		return nil, err
	}

	gameIDs, err := s.repo.FindGameIDs(venueID)
	if err != nil {
		return nil, fmt.Errorf("mekanın oyunları getirilemedi: %w", err)
	}

	games := make([]*domain.Game, 0, len(gameIDs))
	for _, id := range gameIDs {
		game, err := s.gameRepo.FindByID(id)
		if err != nil {
			return nil, fmt.Errorf("oyun getirilemedi: %w", err)
		}
		if game != nil {
			games = append(games, game)
		}
	}

	return games, nil
}

func (s *VenueService) RateVenue(userID, venueID string, score int, comment string) (*domain.Rating, error) {
	venue, err := s.GetVenue(venueID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı getirilemedi: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	rating := &domain.Rating{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		VenueID: venue.ID,
		Score:   clampScore(score),
		Comment: comment,
	}

	if err := s.ratingRepo.Create(rating); err != nil {
		s.logger.Error("Değerlendirme oluşturulamadı", map[string]interface{}{
			"venue_id": venueID,
			"user_id":  userID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("değerlendirme oluşturulamadı: %w", err)
	}

	if err := s.recomputeAverage(venue); err != nil {
		s.logger.Error("Mekan puan ortalaması güncellenemedi", map[string]interface{}{
			"venue_id": venueID,
			"error":    err.Error(),
		})
	}

	s.logger.Info("Mekan değerlendirildi", map[string]interface{}{
		"venue_id": venueID,
		"user_id":  userID,
		"score":    rating.Score,
	})

	return rating, nil
}

func (s *VenueService) UpdateRating(ratingID string, score int, comment string) (bool, error) {
	rating, err := s.ratingRepo.FindByID(ratingID)
	if err != nil {
		return false, fmt.Errorf("değerlendirme getirilemedi: %w", err)
	}
	if rating == nil {
		return false, fmt.Errorf("%w: %s", domain.ErrRatingNotFound, ratingID)
	}

	rating.Score = clampScore(score)
	rating.Comment = comment

	if err := s.ratingRepo.Update(rating); err != nil {
		s.logger.Error("Değerlendirme güncellenemedi", map[string]interface{}{"rating_id": ratingID, "error": err.Error()})
		return false, fmt.Errorf("değerlendirme güncellenemedi: %w", err)
	}

	venue, err := s.repo.FindByID(rating.VenueID)
	if err == nil && venue != nil {
		if err := s.recomputeAverage(venue); err != nil {
			s.logger.Error("Mekan puan ortalaması güncellenemedi", map[string]interface{}{
				"venue_id": rating.VenueID,
				"error":    err.Error(),
			})
		}
	}

	return true, nil
}

func (s *VenueService) GetVenueRatings(venueID string) ([]*domain.Rating, error) {
	if _, err := s.GetVenue(venueID); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.FindByVenue(venueID)
	if err != nil {
		return nil, fmt.Errorf("değerlendirmeler getirilemedi: %w", err)
	}
	return ratings, nil
}

// recomputeAverage rewrites the venue's average score from all its ratings.
func (s *VenueService) recomputeAverage(venue *domain.Venue) error {
	ratings, err := s.ratingRepo.FindByVenue(venue.ID)
	if err != nil {
		return err
	}

	average := 0.0
	if len(ratings) > 0 {
		total := 0
		for _, r := range ratings {
			total += r.Score
		}
		average = float64(total) / float64(len(ratings))
	}

	venue.AverageRating = average
	return s.repo.Update(venue)
}

// clampScore forces a rating score into the 1..5 range.
func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}
