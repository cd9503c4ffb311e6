package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apunab/internal/domain"
)

func newLedgerFixture() (*memUserRepo, *memLedgerRepo, domain.LedgerService) {
	users := newMemUserRepo()
	entries := newMemLedgerRepo()
	users.put(domain.User{ID: "u1", Email: "ayse@unab.edu.co", Balance: 100})
	return users, entries, NewLedgerService(users, entries, testLogger())
}

func TestApplyDeltaCharge(t *testing.T) {
	users, entries, svc := newLedgerFixture()
	user, _ := users.FindByID("u1")

	balance, err := svc.ApplyDelta(user, -30, domain.LedgerReasonBetCreate, "b1")

	require.NoError(t, err)
	assert.Equal(t, 70.0, balance)
	assert.Equal(t, 70.0, user.Balance)
	assert.Equal(t, 70.0, users.balance("u1"))

	entry := entries.lastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, -30.0, entry.Amount)
	assert.Equal(t, 100.0, entry.PreviousBalance)
	assert.Equal(t, 70.0, entry.NewBalance)
	assert.Equal(t, "b1", entry.BetID)
}

func TestApplyDeltaCredit(t *testing.T) {
	users, _, svc := newLedgerFixture()
	user, _ := users.FindByID("u1")

	balance, err := svc.ApplyDelta(user, 50, domain.LedgerReasonBetSettle, "b1")

	require.NoError(t, err)
	assert.Equal(t, 150.0, balance)
	assert.Equal(t, 150.0, users.balance("u1"))
}

func TestApplyDeltaRejectsOverdraft(t *testing.T) {
	users, entries, svc := newLedgerFixture()
	user, _ := users.FindByID("u1")

	balance, err := svc.ApplyDelta(user, -150, domain.LedgerReasonBetCreate, "b1")

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 100.0, balance)
	assert.Equal(t, 100.0, user.Balance)
	assert.Equal(t, 100.0, users.balance("u1"))
	assert.Nil(t, entries.lastEntry())
}

func TestApplyDeltaExactBalanceAllowed(t *testing.T) {
	users, _, svc := newLedgerFixture()
	user, _ := users.FindByID("u1")

	balance, err := svc.ApplyDelta(user, -100, domain.LedgerReasonBetCreate, "b1")

	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestApplyDeltaNilUser(t *testing.T) {
	_, _, svc := newLedgerFixture()

	_, err := svc.ApplyDelta(nil, 10, domain.LedgerReasonAdjustment, "")

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestApplyDeltaPersistFailureRestoresInMemoryBalance(t *testing.T) {
	users, entries, svc := newLedgerFixture()
	user, _ := users.FindByID("u1")
	users.failUpdate = true

	_, err := svc.ApplyDelta(user, -30, domain.LedgerReasonBetCreate, "b1")

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 100.0, user.Balance)
	assert.Nil(t, entries.lastEntry())
}

func TestGetUserHistoryNewestFirst(t *testing.T) {
	users, _, svc := newLedgerFixture()
	user, _ := users.FindByID("u1")

	_, err := svc.ApplyDelta(user, -30, domain.LedgerReasonBetCreate, "b1")
	require.NoError(t, err)
	_, err = svc.ApplyDelta(user, 30, domain.LedgerReasonBetCancel, "b1")
	require.NoError(t, err)

	history, err := svc.GetUserHistory("u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.LedgerReasonBetCancel, history[0].Reason)
	assert.Equal(t, domain.LedgerReasonBetCreate, history[1].Reason)
}
