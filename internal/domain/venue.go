package domain

import "time"

type Venue struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Description   string    `json:"description"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VenueID   string    `json:"venue_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VenueRepository interface {
	Create(venue *Venue) error
	Update(venue *Venue) error
	FindByID(id string) (*Venue, error)
	FindAll() ([]*Venue, error)

	RegisterUser(venueID, userID string) error
	FindMemberIDs(venueID string) ([]string, error)

	AddGame(venueID, gameID string) error
	FindGameIDs(venueID string) ([]string, error)
}

type RatingRepository interface {
	Create(rating *Rating) error
	Update(rating *Rating) error
	FindByID(id string) (*Rating, error)
	FindByVenue(venueID string) ([]*Rating, error)
}

type VenueService interface {
	CreateVenue(name, address, description string) (*Venue, error)
	GetVenue(id string) (*Venue, error)
	GetAllVenues() ([]*Venue, error)
	RegisterUser(venueID, userID string) error

	AddGame(venueID, gameID string) error
	GetVenueGames(venueID string) ([]*Game, error)

	RateVenue(userID, venueID string, score int, comment string) (*Rating, error)
	UpdateRating(ratingID string, score int, comment string) (bool, error)
	GetVenueRatings(venueID string) ([]*Rating, error)
}
