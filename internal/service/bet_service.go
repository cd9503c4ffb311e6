package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"apunab/internal/concurrent"
	"apunab/internal/domain"
	"apunab/pkg/logger"
	"apunab/pkg/metrics"
)

// BetService drives the bet lifecycle. Every operation that touches a
// user's balance runs under that user's lock, including the compensating
// rollback after a failed write, so no reader observes a balance that
// disagrees with the store.
type BetService struct {
	betRepo      domain.BetRepository
	userRepo     domain.UserRepository
	venueRepo    domain.VenueRepository
	gameRepo     domain.GameRepository
	ledger       domain.LedgerService
	auditLogRepo domain.AuditLogRepository
	logger       logger.Logger

	pool      *concurrent.WorkerPool
	userLocks sync.Map
}

func NewBetService(
	betRepo domain.BetRepository,
	userRepo domain.UserRepository,
	venueRepo domain.VenueRepository,
	gameRepo domain.GameRepository,
	ledger domain.LedgerService,
	auditLogRepo domain.AuditLogRepository,
	numWorkers int,
	queueSize int,
	logger logger.Logger,
) domain.BetService {
	s := &BetService{
		betRepo:      betRepo,
		userRepo:     userRepo,
		venueRepo:    venueRepo,
		gameRepo:     gameRepo,
		ledger:       ledger,
		auditLogRepo: auditLogRepo,
		logger:       logger,
	}

	s.pool = concurrent.NewWorkerPool(numWorkers, queueSize, func(job *concurrent.SettlementJob) error {
		_, err := s.SettleBet(job.BetID, job.Won)
		return err
	}, logger)
	s.pool.Start()

	return s
}

// lockUser returns the mutex guarding the given user's balance.
func (s *BetService) lockUser(userID string) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *BetService) CreateBet(bettorID, venueID, gameID string, stake float64, coBettorIDs []string) (*domain.Bet, error) {
	if bettorID == "" || venueID == "" || gameID == "" {
		return nil, fmt.Errorf("%w: bahisçi, mekan ve oyun zorunludur", domain.ErrInvalidRequest)
	}
	if stake <= 0 {
		return nil, fmt.Errorf("%w: bahis tutarı pozitif olmalıdır: %.2f", domain.ErrInvalidRequest, stake)
	}

	bettor, err := s.userRepo.FindByID(bettorID)
	if err != nil {
		return nil, fmt.Errorf("bahisçi getirilemedi: %w", err)
	}
	if bettor == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, bettorID)
	}

	venue, err := s.venueRepo.FindByID(venueID)
	if err != nil {
		return nil, fmt.Errorf("mekan getirilemedi: %w", err)
	}
	if venue == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVenueNotFound, venueID)
	}

	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: oyun getirilemedi: %v", domain.ErrPersistence, err)
	}
	if game == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}

	lock := s.lockUser(bettor.ID)
	lock.Lock()
	defer lock.Unlock()

	// re-read under the lock so the balance check sees the latest value
	bettor, err = s.userRepo.FindByID(bettorID)
	if err != nil {
		return nil, fmt.Errorf("bahisçi getirilemedi: %w", err)
	}
	if bettor == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, bettorID)
	}

	if bettor.Balance < stake {
		s.logger.Warn("Yetersiz bakiye ile bahis denemesi", map[string]interface{}{
			"bettor_id": bettor.ID,
			"balance":   bettor.Balance,
			"stake":     stake,
		})
		return nil, fmt.Errorf("%w: %.2f, istenen: %.2f", domain.ErrInsufficientFunds, bettor.Balance, stake)
	}

	bet := &domain.Bet{
		ID:              uuid.NewString(),
		BettorID:        bettor.ID,
		VenueID:         venue.ID,
		GameID:          game.ID,
		Stake:           stake,
		CreatedAt:       time.Now(),
		CoBettorIDs:     normalizeCoBettors(bettor.ID, coBettorIDs),
		PotentialPayout: PotentialPayout(stake, game),
	}

	if _, err := s.ledger.ApplyDelta(bettor, -stake, domain.LedgerReasonBetCreate, bet.ID); err != nil {
		return nil, err
	}

	if err := s.betRepo.Save(bet); err != nil {
		// the stake is already charged, give it back before surfacing the failure
		if _, compErr := s.ledger.ApplyDelta(bettor, +stake, domain.LedgerReasonRollback, bet.ID); compErr != nil {
			s.logger.Error("Telafi işlemi başarısız, bakiye tutarsız kalabilir", map[string]interface{}{
				"bet_id":    bet.ID,
				"bettor_id": bettor.ID,
				"stake":     stake,
				"error":     compErr.Error(),
			})
		}
		metrics.RecordCompensation("create")
		s.logger.Error("Bahis kaydedilemedi", map[string]interface{}{
			"bet_id": bet.ID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: bahis kaydedilemedi: %v", domain.ErrPersistence, err)
	}

	metrics.BetsCreated.Inc()
	s.audit(domain.EntityTypeBet, bet.ID, domain.ActionTypeCreate,
		fmt.Sprintf("Bahis oluşturuldu: %.2f APUNAB, oyun %s", stake, game.Name))

	s.logger.Info("Bahis oluşturuldu", map[string]interface{}{
		"bet_id":           bet.ID,
		"bettor_id":        bettor.ID,
		"stake":            stake,
		"potential_payout": bet.PotentialPayout,
	})

	return bet, nil
}

func (s *BetService) UpdateBet(betID string, newStake float64, newCoBettorIDs []string) (bool, error) {
	bet, bettor, err := s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}

	lock := s.lockUser(bettor.ID)
	lock.Lock()
	defer lock.Unlock()

	// re-read under the lock, a concurrent settle may have won the race
	bet, bettor, err = s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}
	if bet.Settled {
		return false, domain.ErrAlreadySettled
	}

	prevStake := bet.Stake
	prevPayout := bet.PotentialPayout
	prevCoBettors := bet.CoBettorIDs
	appliedDelta := 0.0
	changed := false

	// a stake change recomputes the payout, so the game must be readable
	// before any balance moves
	var game *domain.Game
	if newStake > 0 && newStake != bet.Stake {
		game, err = s.gameRepo.FindByID(bet.GameID)
		if err != nil {
			return false, fmt.Errorf("%w: oyun getirilemedi: %v", domain.ErrPersistence, err)
		}
	}

	switch {
	case newStake > bet.Stake:
		delta := newStake - bet.Stake
		if bettor.Balance < delta {
			return false, fmt.Errorf("%w: %.2f, istenen ek tutar: %.2f", domain.ErrInsufficientFunds, bettor.Balance, delta)
		}
		if _, err := s.ledger.ApplyDelta(bettor, -delta, domain.LedgerReasonBetUpdate, bet.ID); err != nil {
			return false, err
		}
		appliedDelta = -delta
		bet.Stake = newStake
		changed = true
	case newStake > 0 && newStake < bet.Stake:
		delta := bet.Stake - newStake
		if _, err := s.ledger.ApplyDelta(bettor, +delta, domain.LedgerReasonBetUpdate, bet.ID); err != nil {
			return false, err
		}
		appliedDelta = +delta
		bet.Stake = newStake
		changed = true
	}

	if changed {
		bet.PotentialPayout = PotentialPayout(bet.Stake, game)
	}

	if newCoBettorIDs != nil {
		normalized := normalizeCoBettors(bettor.ID, newCoBettorIDs)
		if !equalIDSets(bet.CoBettorIDs, normalized) {
			bet.CoBettorIDs = normalized
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	if err := s.betRepo.Update(bet); err != nil {
		bet.Stake = prevStake
		bet.PotentialPayout = prevPayout
		bet.CoBettorIDs = prevCoBettors
		if appliedDelta != 0 {
			if _, compErr := s.ledger.ApplyDelta(bettor, -appliedDelta, domain.LedgerReasonRollback, bet.ID); compErr != nil {
				s.logger.Error("Telafi işlemi başarısız, bakiye tutarsız kalabilir", map[string]interface{}{
					"bet_id":    bet.ID,
					"bettor_id": bettor.ID,
					"delta":     appliedDelta,
					"error":     compErr.Error(),
				})
			}
		}
		metrics.RecordCompensation("update")
		s.logger.Error("Bahis güncellenemedi", map[string]interface{}{
			"bet_id": bet.ID,
			"error":  err.Error(),
		})
		return false, fmt.Errorf("%w: bahis güncellenemedi: %v", domain.ErrPersistence, err)
	}

	s.audit(domain.EntityTypeBet, bet.ID, domain.ActionTypeUpdate,
		fmt.Sprintf("Bahis güncellendi: tutar %.2f -> %.2f", prevStake, bet.Stake))

	s.logger.Info("Bahis güncellendi", map[string]interface{}{
		"bet_id":           bet.ID,
		"stake":            bet.Stake,
		"potential_payout": bet.PotentialPayout,
	})

	return true, nil
}

func (s *BetService) CancelBet(betID string) (bool, error) {
	bet, bettor, err := s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}

	lock := s.lockUser(bettor.ID)
	lock.Lock()
	defer lock.Unlock()

	bet, bettor, err = s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}
	if bet.Settled {
		return false, domain.ErrAlreadySettled
	}

	if _, err := s.ledger.ApplyDelta(bettor, +bet.Stake, domain.LedgerReasonBetCancel, bet.ID); err != nil {
		return false, err
	}

	if err := s.betRepo.Delete(bet.ID); err != nil {
		if _, compErr := s.ledger.ApplyDelta(bettor, -bet.Stake, domain.LedgerReasonRollback, bet.ID); compErr != nil {
			s.logger.Error("Telafi işlemi başarısız, bakiye tutarsız kalabilir", map[string]interface{}{
				"bet_id":    bet.ID,
				"bettor_id": bettor.ID,
				"stake":     bet.Stake,
				"error":     compErr.Error(),
			})
		}
		metrics.RecordCompensation("cancel")
		s.logger.Error("Bahis silinemedi", map[string]interface{}{
			"bet_id": bet.ID,
			"error":  err.Error(),
		})
		return false, fmt.Errorf("%w: bahis silinemedi: %v", domain.ErrPersistence, err)
	}

	metrics.BetsCancelled.Inc()
	s.audit(domain.EntityTypeBet, bet.ID, domain.ActionTypeDelete,
		fmt.Sprintf("Bahis iptal edildi, %.2f APUNAB iade edildi", bet.Stake))

	s.logger.Info("Bahis iptal edildi", map[string]interface{}{
		"bet_id":    bet.ID,
		"bettor_id": bettor.ID,
		"refund":    bet.Stake,
	})

	return true, nil
}

func (s *BetService) SettleBet(betID string, won bool) (bool, error) {
	bet, bettor, err := s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}

	lock := s.lockUser(bettor.ID)
	lock.Lock()
	defer lock.Unlock()

	bet, bettor, err = s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}
	if bet.Settled {
		return false, domain.ErrAlreadySettled
	}

	prevWon := bet.Won
	prevSettled := bet.Settled
	prevActual := bet.ActualPayout

	bet.Won = won
	bet.Settled = true
	if won {
		bet.ActualPayout = bet.PotentialPayout
		if _, err := s.ledger.ApplyDelta(bettor, +bet.ActualPayout, domain.LedgerReasonBetSettle, bet.ID); err != nil {
			bet.Won = prevWon
			bet.Settled = prevSettled
			bet.ActualPayout = prevActual
			return false, err
		}
	} else {
		bet.ActualPayout = 0
	}

	if err := s.betRepo.Update(bet); err != nil {
		credited := bet.ActualPayout
		bet.Won = prevWon
		bet.Settled = prevSettled
		bet.ActualPayout = prevActual
		if won && credited > 0 {
			if _, compErr := s.ledger.ApplyDelta(bettor, -credited, domain.LedgerReasonRollback, bet.ID); compErr != nil {
				s.logger.Error("Telafi işlemi başarısız, bakiye tutarsız kalabilir", map[string]interface{}{
					"bet_id":    bet.ID,
					"bettor_id": bettor.ID,
					"payout":    credited,
					"error":     compErr.Error(),
				})
			}
		}
		metrics.RecordCompensation("settle")
		s.logger.Error("Bahis sonuçlandırılamadı", map[string]interface{}{
			"bet_id": bet.ID,
			"error":  err.Error(),
		})
		return false, fmt.Errorf("%w: bahis sonuçlandırılamadı: %v", domain.ErrPersistence, err)
	}

	metrics.RecordSettlement(won)
	s.audit(domain.EntityTypeBet, bet.ID, domain.ActionTypeSettle,
		fmt.Sprintf("Bahis sonuçlandırıldı: kazandı=%t, kazanç=%.2f", won, bet.ActualPayout))

	s.logger.Info("Bahis sonuçlandırıldı", map[string]interface{}{
		"bet_id":        bet.ID,
		"bettor_id":     bettor.ID,
		"won":           won,
		"actual_payout": bet.ActualPayout,
	})

	return true, nil
}

func (s *BetService) AddCoBettor(betID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	bet, bettor, err := s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}
	if bet.Settled {
		return false, domain.ErrAlreadySettled
	}
	if userID == bet.BettorID || bet.HasCoBettor(userID) {
		return false, nil
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, fmt.Errorf("kullanıcı getirilemedi: %w", err)
	}
	if user == nil {
		return false, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	lock := s.lockUser(bettor.ID)
	lock.Lock()
	defer lock.Unlock()

	bet, bettor, err = s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}
	if bet.Settled {
		return false, domain.ErrAlreadySettled
	}
	if bet.HasCoBettor(userID) {
		return false, nil
	}

	prev := bet.CoBettorIDs
	bet.CoBettorIDs = append(append([]string{}, prev...), userID)

	if err := s.betRepo.Update(bet); err != nil {
		bet.CoBettorIDs = prev
		s.logger.Error("Ortak bahisçi eklenemedi", map[string]interface{}{
			"bet_id":  bet.ID,
			"user_id": userID,
			"error":   err.Error(),
		})
		return false, fmt.Errorf("%w: ortak bahisçi eklenemedi: %v", domain.ErrPersistence, err)
	}

	s.logger.Info("Ortak bahisçi eklendi", map[string]interface{}{
		"bet_id":  bet.ID,
		"user_id": userID,
	})

	return true, nil
}

func (s *BetService) RemoveCoBettor(betID, userID string) (bool, error) {
	bet, bettor, err := s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}
	if bet.Settled {
		return false, domain.ErrAlreadySettled
	}

	lock := s.lockUser(bettor.ID)
	lock.Lock()
	defer lock.Unlock()

	bet, bettor, err = s.loadBetWithBettor(betID)
	if err != nil {
		return false, err
	}
	if bet.Settled {
		return false, domain.ErrAlreadySettled
	}
	if !bet.HasCoBettor(userID) {
		return false, nil
	}

	prev := bet.CoBettorIDs
	next := make([]string, 0, len(prev)-1)
	for _, id := range prev {
		if id != userID {
			next = append(next, id)
		}
	}
	bet.CoBettorIDs = next

	if err := s.betRepo.Update(bet); err != nil {
		bet.CoBettorIDs = prev
		s.logger.Error("Ortak bahisçi çıkarılamadı", map[string]interface{}{
			"bet_id":  bet.ID,
			"user_id": userID,
			"error":   err.Error(),
		})
		return false, fmt.Errorf("%w: ortak bahisçi çıkarılamadı: %v", domain.ErrPersistence, err)
	}

	s.logger.Info("Ortak bahisçi çıkarıldı", map[string]interface{}{
		"bet_id":  bet.ID,
		"user_id": userID,
	})

	return true, nil
}

func (s *BetService) GetBet(id string) (*domain.Bet, error) {
	bet, err := s.betRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("bahis getirilemedi: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBetNotFound, id)
	}
	return bet, nil
}

func (s *BetService) GetUserBets(userID string) ([]*domain.Bet, error) {
	bets, err := s.betRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("kullanıcının bahisleri getirilemedi: %w", err)
	}
	return bets, nil
}

func (s *BetService) GetAllBets() ([]*domain.Bet, error) {
	bets, err := s.betRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("bahisler getirilemedi: %w", err)
	}
	return bets, nil
}

func (s *BetService) GetActiveBets() ([]*domain.Bet, error) {
	bets, err := s.betRepo.FindActive()
	if err != nil {
		return nil, fmt.Errorf("aktif bahisler getirilemedi: %w", err)
	}
	return bets, nil
}

// SettleGameBets queues every active bet on the game for settlement and
// waits for the whole batch to finish.
func (s *BetService) SettleGameBets(gameID string, won bool) (int, int, error) {
	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: oyun getirilemedi: %v", domain.ErrPersistence, err)
	}
	if game == nil {
		return 0, 0, fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}

	active, err := s.betRepo.FindActive()
	if err != nil {
		return 0, 0, fmt.Errorf("aktif bahisler getirilemedi: %w", err)
	}

	var matching []*domain.Bet
	for _, bet := range active {
		if bet.GameID == gameID {
			matching = append(matching, bet)
		}
	}

	if len(matching) == 0 {
		return 0, 0, nil
	}

	s.logger.Info("Toplu sonuçlandırma başlatıldı", map[string]interface{}{
		"game_id": gameID,
		"won":     won,
		"count":   len(matching),
	})

	results := make(chan error, len(matching))
	submitted := 0
	failed := 0
	for _, bet := range matching {
		job := &concurrent.SettlementJob{BetID: bet.ID, Won: won, Result: results}
		if s.pool.Submit(job) {
			submitted++
		} else {
			failed++
		}
	}
	metrics.SettlementQueueSize.Set(float64(s.pool.QueueLength()))

	settled := 0
	for i := 0; i < submitted; i++ {
		if err := <-results; err != nil {
			failed++
		} else {
			settled++
		}
	}

	s.logger.Info("Toplu sonuçlandırma tamamlandı", map[string]interface{}{
		"game_id": gameID,
		"settled": settled,
		"failed":  failed,
	})

	return settled, failed, nil
}

func (s *BetService) GetSettlementStats() (domain.SettlementStats, error) {
	stats := s.pool.GetStats()
	return domain.SettlementStats{
		Submitted:      stats.Submitted,
		Completed:      stats.Completed,
		Failed:         stats.Failed,
		Rejected:       stats.Rejected,
		AvgProcessTime: stats.AvgProcessTime,
		QueueLength:    s.pool.QueueLength(),
		QueueCapacity:  s.pool.QueueCapacity(),
	}, nil
}

func (s *BetService) Shutdown() {
	s.pool.Stop()
}

// loadBetWithBettor fetches the bet and its owner, translating missing
// records into the domain error taxonomy.
func (s *BetService) loadBetWithBettor(betID string) (*domain.Bet, *domain.User, error) {
	bet, err := s.betRepo.FindByID(betID)
	if err != nil {
		return nil, nil, fmt.Errorf("bahis getirilemedi: %w", err)
	}
	if bet == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrBetNotFound, betID)
	}

	bettor, err := s.userRepo.FindByID(bet.BettorID)
	if err != nil {
		return nil, nil, fmt.Errorf("bahisçi getirilemedi: %w", err)
	}
	if bettor == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, bet.BettorID)
	}

	return bet, bettor, nil
}

func (s *BetService) audit(entityType domain.EntityType, entityID string, action domain.ActionType, details string) {
	auditLog := &domain.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		CreatedAt:  time.Now(),
	}
	if err := s.auditLogRepo.Create(auditLog); err != nil {
		s.logger.Error("Denetim kaydı oluşturulamadı", map[string]interface{}{"entity_id": entityID, "error": err.Error()})
	}
}
