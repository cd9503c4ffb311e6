package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apunab/internal/domain"
)

func TestGameRepositoryCreateAndFind(t *testing.T) {
	repo := NewGameRepository(newTestDB(t), testLogger())

	game := &domain.Game{ID: "g1", Name: "Langırt", Description: "masa oyunu", Multiplier: 2.0, Active: true}
	require.NoError(t, repo.Create(game))

	byID, err := repo.FindByID("g1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, 2.0, byID.Multiplier)
	assert.True(t, byID.Active)

	byName, err := repo.FindByName("Langırt")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "g1", byName.ID)

	missing, err := repo.FindByName("yok")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGameRepositoryFindActive(t *testing.T) {
	repo := NewGameRepository(newTestDB(t), testLogger())

	require.NoError(t, repo.Create(&domain.Game{ID: "g1", Name: "Langırt", Multiplier: 2.0, Active: true}))
	require.NoError(t, repo.Create(&domain.Game{ID: "g2", Name: "Tavla", Multiplier: 1.5, Active: false}))

	active, err := repo.FindActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "g1", active[0].ID)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGameRepositoryUpdate(t *testing.T) {
	repo := NewGameRepository(newTestDB(t), testLogger())

	game := &domain.Game{ID: "g1", Name: "Langırt", Multiplier: 2.0, Active: true}
	require.NoError(t, repo.Create(game))

	game.Multiplier = 3.0
	game.Active = false
	require.NoError(t, repo.Update(game))

	found, err := repo.FindByID("g1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, found.Multiplier)
	assert.False(t, found.Active)

	assert.ErrorIs(t, repo.Update(&domain.Game{ID: "yok", Name: "x"}), domain.ErrGameNotFound)
}
