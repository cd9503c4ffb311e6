package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apunab/internal/domain"
)

type betFixture struct {
	users  *memUserRepo
	bets   *memBetRepo
	venues *memVenueRepo
	games  *memGameRepo
	ledger *memLedgerRepo
	audit  *memAuditLogRepo
	svc    domain.BetService
}

func newBetFixture(t *testing.T) *betFixture {
	t.Helper()

	f := &betFixture{
		users:  newMemUserRepo(),
		bets:   newMemBetRepo(),
		venues: newMemVenueRepo(),
		games:  newMemGameRepo(),
		ledger: newMemLedgerRepo(),
		audit:  newMemAuditLogRepo(),
	}

	f.users.put(domain.User{ID: "u1", UID: "U0000001", Name: "Ayşe", Surname: "Demir", Email: "ayse@unab.edu.co", Balance: 100})
	f.users.put(domain.User{ID: "u2", UID: "U0000002", Name: "Mehmet", Surname: "Kaya", Email: "mehmet@unab.edu.co", Balance: 50})
	require.NoError(t, f.venues.Create(&domain.Venue{ID: "v1", Name: "Kampüs Kafe"}))
	require.NoError(t, f.games.Create(&domain.Game{ID: "g1", Name: "Langırt", Multiplier: 2.0, Active: true}))
	require.NoError(t, f.games.Create(&domain.Game{ID: "g2", Name: "Tavla", Multiplier: 1.5, Active: true}))

	ledgerSvc := NewLedgerService(f.users, f.ledger, testLogger())
	f.svc = NewBetService(f.bets, f.users, f.venues, f.games, ledgerSvc, f.audit, 2, 16, testLogger())
	t.Cleanup(f.svc.Shutdown)

	return f
}

func (f *betFixture) mustCreate(t *testing.T, stake float64) *domain.Bet {
	t.Helper()
	bet, err := f.svc.CreateBet("u1", "v1", "g1", stake, nil)
	require.NoError(t, err)
	return bet
}

func TestCreateBetDeductsStakeAndComputesPayout(t *testing.T) {
	f := newBetFixture(t)

	bet := f.mustCreate(t, 40)

	assert.Equal(t, 40.0, bet.Stake)
	assert.Equal(t, 80.0, bet.PotentialPayout)
	assert.False(t, bet.Settled)
	assert.Equal(t, 60.0, f.users.balance("u1"))

	stored, ok := f.bets.stored(bet.ID)
	require.True(t, ok)
	assert.Equal(t, bet.ID, stored.ID)

	entry := f.ledger.lastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, domain.LedgerReasonBetCreate, entry.Reason)
	assert.Equal(t, -40.0, entry.Amount)
	assert.Equal(t, 100.0, entry.PreviousBalance)
	assert.Equal(t, 60.0, entry.NewBalance)
}

func TestCreateBetValidation(t *testing.T) {
	f := newBetFixture(t)

	cases := []struct {
		name     string
		bettorID string
		venueID  string
		gameID   string
		stake    float64
		wantErr  error
	}{
		{"eksik bahisçi", "", "v1", "g1", 10, domain.ErrInvalidRequest},
		{"eksik mekan", "u1", "", "g1", 10, domain.ErrInvalidRequest},
		{"sıfır tutar", "u1", "v1", "g1", 0, domain.ErrInvalidRequest},
		{"negatif tutar", "u1", "v1", "g1", -5, domain.ErrInvalidRequest},
		{"bilinmeyen bahisçi", "yok", "v1", "g1", 10, domain.ErrUserNotFound},
		{"bilinmeyen mekan", "u1", "yok", "g1", 10, domain.ErrVenueNotFound},
		{"bilinmeyen oyun", "u1", "v1", "yok", 10, domain.ErrGameNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateBet(tc.bettorID, tc.venueID, tc.gameID, tc.stake, nil)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Equal(t, 100.0, f.users.balance("u1"))
	all, _ := f.svc.GetAllBets()
	assert.Empty(t, all)
}

func TestCreateBetInsufficientFunds(t *testing.T) {
	f := newBetFixture(t)

	_, err := f.svc.CreateBet("u1", "v1", "g1", 150, nil)

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 100.0, f.users.balance("u1"))
	all, _ := f.svc.GetAllBets()
	assert.Empty(t, all)
}

func TestCreateBetSaveFailureRestoresBalance(t *testing.T) {
	f := newBetFixture(t)
	f.bets.failSave = true

	_, err := f.svc.CreateBet("u1", "v1", "g1", 40, nil)

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 100.0, f.users.balance("u1"))
	all, _ := f.svc.GetAllBets()
	assert.Empty(t, all)

	// the charge and its compensation both leave a trace
	entry := f.ledger.lastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, domain.LedgerReasonRollback, entry.Reason)
	assert.Equal(t, 40.0, entry.Amount)
}

func TestCreateBetNormalizesCoBettors(t *testing.T) {
	f := newBetFixture(t)

	bet, err := f.svc.CreateBet("u1", "v1", "g1", 10, []string{"u2", "u1", "u2", ""})
	require.NoError(t, err)

	assert.Equal(t, []string{"u2"}, bet.CoBettorIDs)
}

func TestSettleBetWonCreditsPayout(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	changed, err := f.svc.SettleBet(bet.ID, true)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 140.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.True(t, stored.Settled)
	assert.True(t, stored.Won)
	assert.Equal(t, 80.0, stored.ActualPayout)
}

func TestSettleBetLostKeepsBalance(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	changed, err := f.svc.SettleBet(bet.ID, false)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 60.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.True(t, stored.Settled)
	assert.False(t, stored.Won)
	assert.Equal(t, 0.0, stored.ActualPayout)
}

func TestSettleBetTwiceReturnsAlreadySettled(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	_, err := f.svc.SettleBet(bet.ID, true)
	require.NoError(t, err)

	changed, err := f.svc.SettleBet(bet.ID, true)
	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
	assert.Equal(t, 140.0, f.users.balance("u1"))
}

func TestSettleBetPersistFailureReversesCredit(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)
	f.bets.failUpdate = true

	changed, err := f.svc.SettleBet(bet.ID, true)

	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 60.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.False(t, stored.Settled)
	assert.Equal(t, 0.0, stored.ActualPayout)
}

func TestUpdateBetStakeReductionRefundsDifference(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	changed, err := f.svc.UpdateBet(bet.ID, 20, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 80.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.Equal(t, 20.0, stored.Stake)
	assert.Equal(t, 40.0, stored.PotentialPayout)
}

func TestUpdateBetStakeIncreaseChargesDifference(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	changed, err := f.svc.UpdateBet(bet.ID, 70, nil)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 30.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.Equal(t, 70.0, stored.Stake)
	assert.Equal(t, 140.0, stored.PotentialPayout)
}

func TestUpdateBetStakeIncreaseInsufficientFunds(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	changed, err := f.svc.UpdateBet(bet.ID, 200, nil)

	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 60.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.Equal(t, 40.0, stored.Stake)
}

func TestUpdateBetNoChange(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	changed, err := f.svc.UpdateBet(bet.ID, 40, nil)

	assert.False(t, changed)
	assert.NoError(t, err)
}

func TestUpdateBetReplacesCoBettors(t *testing.T) {
	f := newBetFixture(t)
	bet, err := f.svc.CreateBet("u1", "v1", "g1", 10, []string{"u2"})
	require.NoError(t, err)

	changed, err := f.svc.UpdateBet(bet.ID, 0, []string{})
	require.NoError(t, err)
	assert.True(t, changed)

	stored, _ := f.bets.stored(bet.ID)
	assert.Empty(t, stored.CoBettorIDs)
}

func TestUpdateBetPersistFailureRevertsRefund(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)
	f.bets.failUpdate = true

	changed, err := f.svc.UpdateBet(bet.ID, 20, nil)

	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 60.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.Equal(t, 40.0, stored.Stake)
}

func TestUpdateBetGameLookupFailureLeavesBetUntouched(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)
	f.games.failFind = true

	changed, err := f.svc.UpdateBet(bet.ID, 20, nil)

	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 60.0, f.users.balance("u1"))
	stored, _ := f.bets.stored(bet.ID)
	assert.Equal(t, 40.0, stored.Stake)
	assert.Equal(t, 80.0, stored.PotentialPayout)
}

func TestUpdateBetSettledRejected(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)
	_, err := f.svc.SettleBet(bet.ID, false)
	require.NoError(t, err)

	changed, err := f.svc.UpdateBet(bet.ID, 20, nil)

	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
}

func TestCancelBetRefundsStakeAndDeletes(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)

	changed, err := f.svc.CancelBet(bet.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 100.0, f.users.balance("u1"))
	_, ok := f.bets.stored(bet.ID)
	assert.False(t, ok)
}

func TestCancelBetDeleteFailureReversesRefund(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)
	f.bets.failDelete = true

	changed, err := f.svc.CancelBet(bet.ID)

	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 60.0, f.users.balance("u1"))
	_, ok := f.bets.stored(bet.ID)
	assert.True(t, ok)
}

func TestCancelBetSettledRejected(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 40)
	_, err := f.svc.SettleBet(bet.ID, true)
	require.NoError(t, err)

	changed, err := f.svc.CancelBet(bet.ID)

	assert.False(t, changed)
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)
	assert.Equal(t, 140.0, f.users.balance("u1"))
}

func TestAddCoBettor(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 10)

	t.Run("ekleme başarılı", func(t *testing.T) {
		changed, err := f.svc.AddCoBettor(bet.ID, "u2")
		require.NoError(t, err)
		assert.True(t, changed)
		stored, _ := f.bets.stored(bet.ID)
		assert.Equal(t, []string{"u2"}, stored.CoBettorIDs)
	})

	t.Run("zaten ekli", func(t *testing.T) {
		changed, err := f.svc.AddCoBettor(bet.ID, "u2")
		assert.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("bahisçinin kendisi", func(t *testing.T) {
		changed, err := f.svc.AddCoBettor(bet.ID, "u1")
		assert.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("boş kimlik", func(t *testing.T) {
		changed, err := f.svc.AddCoBettor(bet.ID, "")
		assert.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("bilinmeyen kullanıcı", func(t *testing.T) {
		changed, err := f.svc.AddCoBettor(bet.ID, "yok")
		assert.False(t, changed)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestRemoveCoBettor(t *testing.T) {
	f := newBetFixture(t)
	bet, err := f.svc.CreateBet("u1", "v1", "g1", 10, []string{"u2"})
	require.NoError(t, err)

	t.Run("çıkarma başarılı", func(t *testing.T) {
		changed, err := f.svc.RemoveCoBettor(bet.ID, "u2")
		require.NoError(t, err)
		assert.True(t, changed)
		stored, _ := f.bets.stored(bet.ID)
		assert.Empty(t, stored.CoBettorIDs)
	})

	t.Run("listede yok", func(t *testing.T) {
		changed, err := f.svc.RemoveCoBettor(bet.ID, "u2")
		assert.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestSettleGameBetsSettlesAllMatching(t *testing.T) {
	f := newBetFixture(t)

	bet1, err := f.svc.CreateBet("u1", "v1", "g1", 20, nil)
	require.NoError(t, err)
	bet2, err := f.svc.CreateBet("u2", "v1", "g1", 10, nil)
	require.NoError(t, err)
	other, err := f.svc.CreateBet("u1", "v1", "g2", 10, nil)
	require.NoError(t, err)

	settled, failed, err := f.svc.SettleGameBets("g1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, settled)
	assert.Equal(t, 0, failed)

	// u1: 100 - 20 - 10 + 40 = 110, u2: 50 - 10 + 20 = 60
	assert.Equal(t, 110.0, f.users.balance("u1"))
	assert.Equal(t, 60.0, f.users.balance("u2"))

	for _, id := range []string{bet1.ID, bet2.ID} {
		stored, _ := f.bets.stored(id)
		assert.True(t, stored.Settled)
		assert.True(t, stored.Won)
	}
	stored, _ := f.bets.stored(other.ID)
	assert.False(t, stored.Settled)
}

func TestSettleGameBetsUnknownGame(t *testing.T) {
	f := newBetFixture(t)

	_, _, err := f.svc.SettleGameBets("yok", true)

	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestSettleGameBetsNoActiveBets(t *testing.T) {
	f := newBetFixture(t)

	settled, failed, err := f.svc.SettleGameBets("g1", false)

	require.NoError(t, err)
	assert.Zero(t, settled)
	assert.Zero(t, failed)
}

func TestGetBetUnknownID(t *testing.T) {
	f := newBetFixture(t)

	_, err := f.svc.GetBet("yok")

	assert.ErrorIs(t, err, domain.ErrBetNotFound)
}

func TestGetSettlementStats(t *testing.T) {
	f := newBetFixture(t)
	bet := f.mustCreate(t, 10)

	_, _, err := f.svc.SettleGameBets("g1", false)
	require.NoError(t, err)

	stats, err := f.svc.GetSettlementStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Submitted)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, 16, stats.QueueCapacity)

	stored, _ := f.bets.stored(bet.ID)
	assert.True(t, stored.Settled)
}
