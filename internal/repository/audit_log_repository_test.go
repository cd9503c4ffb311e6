package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apunab/internal/domain"
)

func TestAuditLogRepositoryCreateAndFindByEntity(t *testing.T) {
	repo := NewAuditLogRepository(newTestDB(t), testLogger())

	entry := &domain.AuditLog{
		EntityType: domain.EntityTypeBet,
		EntityID:   "b1",
		Action:     domain.ActionTypeCreate,
		Details:    "Bahis oluşturuldu: 40.00 APUNAB",
	}
	require.NoError(t, repo.Create(entry))
	assert.NotZero(t, entry.ID)

	require.NoError(t, repo.Create(&domain.AuditLog{
		EntityType: domain.EntityTypeUser,
		EntityID:   "u1",
		Action:     domain.ActionTypeCreate,
	}))

	logs, err := repo.FindByEntityID(domain.EntityTypeBet, "b1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.ActionTypeCreate, logs[0].Action)
	assert.Equal(t, "Bahis oluşturuldu: 40.00 APUNAB", logs[0].Details)
}

func TestAuditLogRepositoryFindAllPaged(t *testing.T) {
	repo := NewAuditLogRepository(newTestDB(t), testLogger())

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(&domain.AuditLog{
			EntityType: domain.EntityTypeBet,
			EntityID:   "b1",
			Action:     domain.ActionTypeUpdate,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	firstPage, err := repo.FindAll(2, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	assert.Equal(t, int64(5), firstPage[0].ID)
	assert.Equal(t, int64(4), firstPage[1].ID)

	secondPage, err := repo.FindAll(2, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	assert.Equal(t, int64(3), secondPage[0].ID)

	lastPage, err := repo.FindAll(2, 4)
	require.NoError(t, err)
	assert.Len(t, lastPage, 1)
}
