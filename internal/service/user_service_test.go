package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"apunab/internal/domain"
)

func newUserFixture() (*memUserRepo, *memBetRepo, domain.UserService) {
	users := newMemUserRepo()
	bets := newMemBetRepo()
	return users, bets, NewUserService(users, bets, newMemAuditLogRepo(), testLogger())
}

func TestRegisterCreatesUserWithZeroBalance(t *testing.T) {
	users, _, svc := newUserFixture()

	user, err := svc.Register("U0000001", "Ayşe", "Demir", "ayse@unab.edu.co", "Gizli1234", "Mühendislik", 3)

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 0.0, user.Balance)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Gizli1234")))

	stored, err := users.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ayse@unab.edu.co", stored.Email)
}

func TestRegisterValidation(t *testing.T) {
	_, _, svc := newUserFixture()

	cases := []struct {
		name     string
		uid      string
		email    string
		password string
		term     int
		wantErr  error
	}{
		{"eksik kimlik", "", "ayse@unab.edu.co", "Gizli1234", 3, domain.ErrInvalidRequest},
		{"yanlış e-posta alanı", "U1", "ayse@gmail.com", "Gizli1234", 3, domain.ErrInvalidRequest},
		{"kısa şifre", "U1", "ayse@unab.edu.co", "Gz1", 3, domain.ErrInvalidRequest},
		{"büyük harfsiz şifre", "U1", "ayse@unab.edu.co", "gizli1234", 3, domain.ErrInvalidRequest},
		{"rakamsız şifre", "U1", "ayse@unab.edu.co", "GizliSifre", 3, domain.ErrInvalidRequest},
		{"dönem sıfır", "U1", "ayse@unab.edu.co", "Gizli1234", 0, domain.ErrInvalidRequest},
		{"dönem on bir", "U1", "ayse@unab.edu.co", "Gizli1234", 11, domain.ErrInvalidRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.uid, "Ayşe", "Demir", tc.email, tc.password, "Mühendislik", tc.term)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	_, _, svc := newUserFixture()

	_, err := svc.Register("U0000001", "Ayşe", "Demir", "ayse@unab.edu.co", "Gizli1234", "Mühendislik", 3)
	require.NoError(t, err)

	t.Run("aynı e-posta", func(t *testing.T) {
		_, err := svc.Register("U0000002", "Başka", "Biri", "ayse@unab.edu.co", "Gizli1234", "Hukuk", 2)
		assert.ErrorIs(t, err, domain.ErrDuplicateRecord)
	})

	t.Run("aynı kimlik", func(t *testing.T) {
		_, err := svc.Register("U0000001", "Başka", "Biri", "baska@unab.edu.co", "Gizli1234", "Hukuk", 2)
		assert.ErrorIs(t, err, domain.ErrDuplicateRecord)
	})
}

func TestLogin(t *testing.T) {
	_, _, svc := newUserFixture()

	registered, err := svc.Register("U0000001", "Ayşe", "Demir", "ayse@unab.edu.co", "Gizli1234", "Mühendislik", 3)
	require.NoError(t, err)

	t.Run("doğru şifre", func(t *testing.T) {
		user, err := svc.Login("ayse@unab.edu.co", "Gizli1234")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("yanlış şifre", func(t *testing.T) {
		_, err := svc.Login("ayse@unab.edu.co", "Yanlis9876")
		assert.EqualError(t, err, "geçersiz e-posta veya şifre")
	})

	t.Run("bilinmeyen e-posta", func(t *testing.T) {
		_, err := svc.Login("yok@unab.edu.co", "Gizli1234")
		assert.EqualError(t, err, "geçersiz e-posta veya şifre")
	})
}

func TestUpdateProfilePreservesBalanceAndPassword(t *testing.T) {
	users, _, svc := newUserFixture()

	registered, err := svc.Register("U0000001", "Ayşe", "Demir", "ayse@unab.edu.co", "Gizli1234", "Mühendislik", 3)
	require.NoError(t, err)

	seeded, _ := users.FindByID(registered.ID)
	seeded.Balance = 75
	require.NoError(t, users.Update(seeded))

	update := &domain.User{
		ID:      registered.ID,
		UID:     registered.UID,
		Name:    "Ayşe",
		Surname: "Yılmaz",
		Email:   "ayse@unab.edu.co",
		Career:  "Mimarlık",
		Term:    4,
		Balance: 9999,
	}
	require.NoError(t, svc.UpdateProfile(update))

	stored, _ := users.FindByID(registered.ID)
	assert.Equal(t, "Yılmaz", stored.Surname)
	assert.Equal(t, "Mimarlık", stored.Career)
	assert.Equal(t, 75.0, stored.Balance)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Gizli1234")))
}

func TestUpdateProfileEmailChecks(t *testing.T) {
	_, _, svc := newUserFixture()

	first, err := svc.Register("U0000001", "Ayşe", "Demir", "ayse@unab.edu.co", "Gizli1234", "Mühendislik", 3)
	require.NoError(t, err)
	_, err = svc.Register("U0000002", "Mehmet", "Kaya", "mehmet@unab.edu.co", "Gizli1234", "Hukuk", 2)
	require.NoError(t, err)

	t.Run("alan dışı e-posta", func(t *testing.T) {
		update := *first
		update.Email = "ayse@gmail.com"
		assert.ErrorIs(t, svc.UpdateProfile(&update), domain.ErrInvalidRequest)
	})

	t.Run("kullanımda olan e-posta", func(t *testing.T) {
		update := *first
		update.Email = "mehmet@unab.edu.co"
		assert.ErrorIs(t, svc.UpdateProfile(&update), domain.ErrDuplicateRecord)
	})
}

func TestDeleteUserRemovesBetsToo(t *testing.T) {
	users, bets, svc := newUserFixture()

	registered, err := svc.Register("U0000001", "Ayşe", "Demir", "ayse@unab.edu.co", "Gizli1234", "Mühendislik", 3)
	require.NoError(t, err)
	require.NoError(t, bets.Save(&domain.Bet{ID: "b1", BettorID: registered.ID, VenueID: "v1", GameID: "g1", Stake: 10}))

	require.NoError(t, svc.DeleteUser(registered.ID))

	stored, _ := users.FindByID(registered.ID)
	assert.Nil(t, stored)
	remaining, _ := bets.FindByUser(registered.ID)
	assert.Empty(t, remaining)
}

func TestDeleteUserUnknownID(t *testing.T) {
	_, _, svc := newUserFixture()

	assert.ErrorIs(t, svc.DeleteUser("yok"), domain.ErrUserNotFound)
}
