package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apunab/internal/domain"
)

func TestVenueRepositoryCreateAndFind(t *testing.T) {
	repo := NewVenueRepository(newTestDB(t), testLogger())

	venue := &domain.Venue{ID: "v1", Name: "Kampüs Kafe", Address: "Kampüs Cad. 1", Description: "langırt"}
	require.NoError(t, repo.Create(venue))

	found, err := repo.FindByID("v1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Kampüs Kafe", found.Name)
	assert.Equal(t, 0.0, found.AverageRating)

	missing, err := repo.FindByID("yok")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVenueRepositoryFindAllOrderedByName(t *testing.T) {
	repo := NewVenueRepository(newTestDB(t), testLogger())

	require.NoError(t, repo.Create(&domain.Venue{ID: "v1", Name: "Kütüphane"}))
	require.NoError(t, repo.Create(&domain.Venue{ID: "v2", Name: "Kafeterya"}))

	venues, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "Kafeterya", venues[0].Name)
	assert.Equal(t, "Kütüphane", venues[1].Name)
}

func TestVenueRepositoryUpdateAverageRating(t *testing.T) {
	repo := NewVenueRepository(newTestDB(t), testLogger())

	venue := &domain.Venue{ID: "v1", Name: "Kampüs Kafe"}
	require.NoError(t, repo.Create(venue))

	venue.AverageRating = 4.5
	require.NoError(t, repo.Update(venue))

	found, err := repo.FindByID("v1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, found.AverageRating)

	assert.ErrorIs(t, repo.Update(&domain.Venue{ID: "yok"}), domain.ErrVenueNotFound)
}

func TestVenueRepositoryMembersAndGames(t *testing.T) {
	repo := NewVenueRepository(newTestDB(t), testLogger())

	require.NoError(t, repo.Create(&domain.Venue{ID: "v1", Name: "Kampüs Kafe"}))

	require.NoError(t, repo.RegisterUser("v1", "u1"))
	require.NoError(t, repo.RegisterUser("v1", "u2"))
	require.NoError(t, repo.AddGame("v1", "g1"))

	members, err := repo.FindMemberIDs("v1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2"}, members)

	games, err := repo.FindGameIDs("v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, games)
}

func TestRatingRepositoryRoundTrip(t *testing.T) {
	repo := NewRatingRepository(newTestDB(t), testLogger())

	rating := &domain.Rating{ID: "r1", UserID: "u1", VenueID: "v1", Score: 4, Comment: "güzel"}
	require.NoError(t, repo.Create(rating))

	found, err := repo.FindByID("r1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 4, found.Score)
	assert.Equal(t, "güzel", found.Comment)

	found.Score = 5
	found.Comment = "harika"
	require.NoError(t, repo.Update(found))

	byVenue, err := repo.FindByVenue("v1")
	require.NoError(t, err)
	require.Len(t, byVenue, 1)
	assert.Equal(t, 5, byVenue[0].Score)

	assert.ErrorIs(t, repo.Update(&domain.Rating{ID: "yok"}), domain.ErrRatingNotFound)
}
