package service

import (
	"fmt"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
	"apunab/pkg/metrics"
)

type LedgerService struct {
	userRepo   domain.UserRepository
	ledgerRepo domain.LedgerRepository
	logger     logger.Logger
}

func NewLedgerService(userRepo domain.UserRepository, ledgerRepo domain.LedgerRepository, logger logger.Logger) domain.LedgerService {
	return &LedgerService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

func (s *LedgerService) ApplyDelta(user *domain.User, amount float64, reason domain.LedgerReason, betID string) (float64, error) {
	if user == nil {
		return 0, fmt.Errorf("%w: kullanıcı boş olamaz", domain.ErrInvalidRequest)
	}

	previous := user.Balance
	next := previous + amount

	if next < 0 {
		s.logger.Warn("Yetersiz bakiye", map[string]interface{}{
			"user_id": user.ID,
			"balance": previous,
			"amount":  amount,
		})
		metrics.RecordLedgerOperation(string(reason), "rejected")
		return previous, fmt.Errorf("%w: %.2f, istenen: %.2f", domain.ErrInsufficientFunds, previous, -amount)
	}

	user.Balance = next
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		// persistence failed, the in-memory balance must not drift from the store
		user.Balance = previous
		s.logger.Error("Bakiye güncellenemedi, bellek içi bakiye geri alındı", map[string]interface{}{
			"user_id": user.ID,
			"amount":  amount,
			"reason":  string(reason),
			"error":   err.Error(),
		})
		metrics.RecordLedgerOperation(string(reason), "failed")
		return previous, fmt.Errorf("%w: bakiye güncellenemedi: %v", domain.ErrPersistence, err)
	}

	entry := &domain.LedgerEntry{
		UserID:          user.ID,
		Amount:          amount,
		PreviousBalance: previous,
		NewBalance:      next,
		Reason:          reason,
		BetID:           betID,
		CreatedAt:       time.Now(),
	}

	if err := s.ledgerRepo.Create(entry); err != nil {
		s.logger.Error("Bakiye defteri kaydı oluşturulamadı", map[string]interface{}{
			"user_id": user.ID,
			"amount":  amount,
			"reason":  string(reason),
			"error":   err.Error(),
		})
	}

	s.logger.Debug("Bakiye güncellendi", map[string]interface{}{
		"user_id":     user.ID,
		"amount":      amount,
		"reason":      string(reason),
		"new_balance": next,
	})
	metrics.RecordLedgerOperation(string(reason), "success")

	return next, nil
}

func (s *LedgerService) GetUserHistory(userID string) ([]*domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindByUser(userID)
	if err != nil {
		s.logger.Error("Bakiye geçmişi getirilemedi", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil, fmt.Errorf("bakiye geçmişi getirilemedi: %w", err)
	}
	return entries, nil
}
