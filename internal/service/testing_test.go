package service

import (
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"apunab/internal/domain"
	"apunab/pkg/logger"
)

// In-memory repository doubles shared by the service tests. They hand out
// copies, like the sqlite repositories do, so reverting a field on a loaded
// entity never leaks into the store.

var errDiskFailure = errors.New("disk yazma hatası")

func testLogger() logger.Logger {
	return logger.New(logger.ErrorLevel, io.Discard)
}

type memUserRepo struct {
	mu         sync.Mutex
	users      map[string]domain.User
	failUpdate bool
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) put(user domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
}

func (r *memUserRepo) FindByID(id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := user
	return &copied, nil
}

func (r *memUserRepo) FindByUID(uid string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.UID == uid {
			copied := user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return domain.ErrDuplicateRecord
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errDiskFailure
	}
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) balance(id string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id].Balance
}

type memBetRepo struct {
	mu         sync.Mutex
	bets       map[string]domain.Bet
	failSave   bool
	failUpdate bool
	failDelete bool
}

func newMemBetRepo() *memBetRepo {
	return &memBetRepo{bets: make(map[string]domain.Bet)}
}

func copyBet(bet domain.Bet) *domain.Bet {
	copied := bet
	copied.CoBettorIDs = append([]string(nil), bet.CoBettorIDs...)
	return &copied
}

func (r *memBetRepo) Save(bet *domain.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errDiskFailure
	}
	if _, ok := r.bets[bet.ID]; ok {
		return domain.ErrDuplicateRecord
	}
	r.bets[bet.ID] = *copyBet(*bet)
	return nil
}

func (r *memBetRepo) Update(bet *domain.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errDiskFailure
	}
	if _, ok := r.bets[bet.ID]; !ok {
		return domain.ErrBetNotFound
	}
	r.bets[bet.ID] = *copyBet(*bet)
	return nil
}

func (r *memBetRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete {
		return errDiskFailure
	}
	delete(r.bets, id)
	return nil
}

func (r *memBetRepo) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, bet := range r.bets {
		if bet.BettorID == userID {
			delete(r.bets, id)
		}
	}
	return nil
}

func (r *memBetRepo) FindByID(id string) (*domain.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bet, ok := r.bets[id]
	if !ok {
		return nil, nil
	}
	return copyBet(bet), nil
}

func (r *memBetRepo) list(filter func(domain.Bet) bool) []*domain.Bet {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Bet
	for _, bet := range r.bets {
		if filter(bet) {
			result = append(result, copyBet(bet))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *memBetRepo) FindByUser(userID string) ([]*domain.Bet, error) {
	return r.list(func(b domain.Bet) bool { return b.BettorID == userID }), nil
}

func (r *memBetRepo) FindAll() ([]*domain.Bet, error) {
	return r.list(func(domain.Bet) bool { return true }), nil
}

func (r *memBetRepo) FindActive() ([]*domain.Bet, error) {
	return r.list(func(b domain.Bet) bool { return !b.Settled }), nil
}

func (r *memBetRepo) stored(id string) (domain.Bet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bet, ok := r.bets[id]
	return bet, ok
}

type memVenueRepo struct {
	mu      sync.Mutex
	venues  map[string]domain.Venue
	members map[string][]string
	games   map[string][]string
}

func newMemVenueRepo() *memVenueRepo {
	return &memVenueRepo{
		venues:  make(map[string]domain.Venue),
		members: make(map[string][]string),
		games:   make(map[string][]string),
	}
}

func (r *memVenueRepo) Create(venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[venue.ID]; ok {
		return domain.ErrDuplicateRecord
	}
	r.venues[venue.ID] = *venue
	return nil
}

func (r *memVenueRepo) Update(venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[venue.ID]; !ok {
		return domain.ErrVenueNotFound
	}
	r.venues[venue.ID] = *venue
	return nil
}

func (r *memVenueRepo) FindByID(id string) (*domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok {
		return nil, nil
	}
	copied := venue
	return &copied, nil
}

func (r *memVenueRepo) FindAll() ([]*domain.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Venue
	for _, venue := range r.venues {
		copied := venue
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memVenueRepo) RegisterUser(venueID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[venueID] = append(r.members[venueID], userID)
	return nil
}

func (r *memVenueRepo) FindMemberIDs(venueID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.members[venueID]...), nil
}

func (r *memVenueRepo) AddGame(venueID, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[venueID] = append(r.games[venueID], gameID)
	return nil
}

func (r *memVenueRepo) FindGameIDs(venueID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.games[venueID]...), nil
}

type memGameRepo struct {
	mu       sync.Mutex
	games    map[string]domain.Game
	failFind bool
}

func newMemGameRepo() *memGameRepo {
	return &memGameRepo{games: make(map[string]domain.Game)}
}

func (r *memGameRepo) Create(game *domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; ok {
		return domain.ErrDuplicateRecord
	}
	r.games[game.ID] = *game
	return nil
}

func (r *memGameRepo) Update(game *domain.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; !ok {
		return domain.ErrGameNotFound
	}
	r.games[game.ID] = *game
	return nil
}

func (r *memGameRepo) FindByID(id string) (*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFind {
		return nil, errDiskFailure
	}
	game, ok := r.games[id]
	if !ok {
		return nil, nil
	}
	copied := game
	return &copied, nil
}

func (r *memGameRepo) FindByName(name string) (*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, game := range r.games {
		if game.Name == name {
			copied := game
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memGameRepo) FindAll() ([]*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Game
	for _, game := range r.games {
		copied := game
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memGameRepo) FindActive() ([]*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Game
	for _, game := range r.games {
		if game.Active {
			copied := game
			result = append(result, &copied)
		}
	}
	return result, nil
}

type memRatingRepo struct {
	mu      sync.Mutex
	ratings map[string]domain.Rating
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{ratings: make(map[string]domain.Rating)}
}

func (r *memRatingRepo) Create(rating *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratings[rating.ID] = *rating
	return nil
}

func (r *memRatingRepo) Update(rating *domain.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[rating.ID]; !ok {
		return domain.ErrRatingNotFound
	}
	r.ratings[rating.ID] = *rating
	return nil
}

func (r *memRatingRepo) FindByID(id string) (*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating, ok := r.ratings[id]
	if !ok {
		return nil, nil
	}
	copied := rating
	return &copied, nil
}

func (r *memRatingRepo) FindByVenue(venueID string) ([]*domain.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Rating
	for _, rating := range r.ratings {
		if rating.VenueID == venueID {
			copied := rating
			result = append(result, &copied)
		}
	}
	return result, nil
}

type memLedgerRepo struct {
	mu      sync.Mutex
	entries []*domain.LedgerEntry
	nextID  int64
}

func newMemLedgerRepo() *memLedgerRepo {
	return &memLedgerRepo{}
}

func (r *memLedgerRepo) Create(entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = r.nextID
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *memLedgerRepo) FindByUser(userID string) ([]*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.LedgerEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			copied := *r.entries[i]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memLedgerRepo) lastEntry() *domain.LedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return nil
	}
	copied := *r.entries[len(r.entries)-1]
	return &copied
}

type memAuditLogRepo struct {
	mu   sync.Mutex
	logs []*domain.AuditLog
}

func newMemAuditLogRepo() *memAuditLogRepo {
	return &memAuditLogRepo{}
}

func (r *memAuditLogRepo) Create(log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = int64(len(r.logs) + 1)
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *memAuditLogRepo) FindByEntityID(entityType domain.EntityType, entityID string) ([]*domain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.AuditLog
	for _, log := range r.logs {
		if log.EntityType == entityType && log.EntityID == entityID {
			copied := *log
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memAuditLogRepo) FindAll(limit, offset int) ([]*domain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.AuditLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		copied := *r.logs[i]
		result = append(result, &copied)
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
