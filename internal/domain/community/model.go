package community

import "time"

// Follow links a user to a shelter they follow. One row per pair.
type Follow struct {
	ShelterID string
	UserID    string
	CreatedAt time.Time
}

// Review is a user's rating of a shelter. Ratings run 0..5 in half-star
// steps; the shelter average is derived, never stored.
type Review struct {
	ID        string
	ShelterID string
	UserID    string

	Rating  float64
	Comment string

	CreatedAt time.Time
}
