package shelters

import (
	"time"

	"pet-adoption-api/internal/domain/addresses"
)

// Shelter is an adoption organization. It owns pets, has managers (users with
// the shelter-manager role for this shelter) and collects followers/reviews.
// Shelters are never hard-deleted: Delete flips IsDeleted and the record drops
// out of all normal lookups.
type Shelter struct {
	ID string

	Name        string
	Description string

	PhoneNumber string
	Email       string
	Website     string
	DonationURL string

	Address addresses.Address

	IsDeleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ManagerLink grants a user management permission over one shelter.
// Created on application approval or by explicit admin assignment; removed
// when the manager is revoked or the shelter is deleted.
type ManagerLink struct {
	ShelterID string
	UserID    string
	CreatedAt time.Time
}

// Metrics is computed on demand from the pet/follower/review sources.
// It is never persisted and carries no staleness guarantee.
type Metrics struct {
	ShelterID     string
	TotalPets     int
	AvailablePets int
	AdoptedPets   int
	FollowerCount int
	AverageRating float64
	ReviewCount   int
}
