package service

import (
	"context"

	"apunab/internal/domain"
	"apunab/pkg/cache"
	"apunab/pkg/logger"
)

// CachedBetService layers the read side of the bet service over Redis.
// Mutations delegate and invalidate, reads go through the cache.
type CachedBetService struct {
	betService domain.BetService
	cache      cache.Cache
	strategy   cache.CacheStrategy
	logger     logger.Logger
}

func NewCachedBetService(
	betService domain.BetService,
	cacheInstance cache.Cache,
	strategy cache.CacheStrategy,
	logger logger.Logger,
) domain.BetService {
	return &CachedBetService{
		betService: betService,
		cache:      cacheInstance,
		strategy:   strategy,
		logger:     logger,
	}
}

func (s *CachedBetService) CreateBet(bettorID, venueID, gameID string, stake float64, coBettorIDs []string) (*domain.Bet, error) {
	bet, err := s.betService.CreateBet(bettorID, venueID, gameID, stake, coBettorIDs)
	if err != nil {
		return nil, err
	}
	s.invalidate(bet.ID, bet.BettorID)
	return bet, nil
}

func (s *CachedBetService) UpdateBet(betID string, newStake float64, newCoBettorIDs []string) (bool, error) {
	changed, err := s.betService.UpdateBet(betID, newStake, newCoBettorIDs)
	if changed {
		s.invalidateByBetID(betID)
	}
	return changed, err
}

func (s *CachedBetService) CancelBet(betID string) (bool, error) {
	// capture the owner before the record disappears
	bet, _ := s.betService.GetBet(betID)

	cancelled, err := s.betService.CancelBet(betID)
	if cancelled && bet != nil {
		s.invalidate(bet.ID, bet.BettorID)
	}
	return cancelled, err
}

func (s *CachedBetService) SettleBet(betID string, won bool) (bool, error) {
	settled, err := s.betService.SettleBet(betID, won)
	if settled {
		s.invalidateByBetID(betID)
	}
	return settled, err
}

func (s *CachedBetService) AddCoBettor(betID, userID string) (bool, error) {
	added, err := s.betService.AddCoBettor(betID, userID)
	if added {
		s.invalidateByBetID(betID)
	}
	return added, err
}

func (s *CachedBetService) RemoveCoBettor(betID, userID string) (bool, error) {
	removed, err := s.betService.RemoveCoBettor(betID, userID)
	if removed {
		s.invalidateByBetID(betID)
	}
	return removed, err
}

func (s *CachedBetService) GetBet(id string) (*domain.Bet, error) {
	ctx := context.Background()
	key := cache.BetCacheKey(id)

	var bet *domain.Bet
	err := s.strategy.Execute(ctx, key, &bet, func() (interface{}, error) {
		return s.betService.GetBet(id)
	})
	if err != nil {
		return s.betService.GetBet(id)
	}
	return bet, nil
}

func (s *CachedBetService) GetUserBets(userID string) ([]*domain.Bet, error) {
	ctx := context.Background()
	key := cache.UserBetsCacheKey(userID)

	var bets []*domain.Bet
	err := s.strategy.Execute(ctx, key, &bets, func() (interface{}, error) {
		return s.betService.GetUserBets(userID)
	})
	if err != nil {
		return s.betService.GetUserBets(userID)
	}
	return bets, nil
}

func (s *CachedBetService) GetAllBets() ([]*domain.Bet, error) {
	ctx := context.Background()
	key := cache.AllBetsCacheKey()

	var bets []*domain.Bet
	err := s.strategy.Execute(ctx, key, &bets, func() (interface{}, error) {
		return s.betService.GetAllBets()
	})
	if err != nil {
		return s.betService.GetAllBets()
	}
	return bets, nil
}

func (s *CachedBetService) GetActiveBets() ([]*domain.Bet, error) {
	ctx := context.Background()
	key := cache.ActiveBetsCacheKey()

	var bets []*domain.Bet
	err := s.strategy.Execute(ctx, key, &bets, func() (interface{}, error) {
		return s.betService.GetActiveBets()
	})
	if err != nil {
		return s.betService.GetActiveBets()
	}
	return bets, nil
}

func (s *CachedBetService) SettleGameBets(gameID string, won bool) (int, int, error) {
	settled, failed, err := s.betService.SettleGameBets(gameID, won)
	if settled > 0 {
		ctx := context.Background()
		if cacheErr := s.cache.DeletePattern(ctx, "bet*"); cacheErr != nil {
			s.logger.Warn("Toplu sonuçlandırma sonrası önbellek temizlenemedi", map[string]interface{}{
				"game_id": gameID,
				"error":   cacheErr.Error(),
			})
		}
	}
	return settled, failed, err
}

func (s *CachedBetService) GetSettlementStats() (domain.SettlementStats, error) {
	return s.betService.GetSettlementStats()
}

func (s *CachedBetService) Shutdown() {
	s.betService.Shutdown()
}

func (s *CachedBetService) invalidateByBetID(betID string) {
	bet, err := s.betService.GetBet(betID)
	if err != nil || bet == nil {
		s.invalidate(betID, "")
		return
	}
	s.invalidate(bet.ID, bet.BettorID)
}

func (s *CachedBetService) invalidate(betID, bettorID string) {
	ctx := context.Background()
	if err := cache.InvalidateBetCache(ctx, s.cache, betID, bettorID); err != nil {
		s.logger.Warn("Bahis önbelleği temizlenemedi", map[string]interface{}{
			"bet_id": betID,
			"error":  err.Error(),
		})
	}
}
