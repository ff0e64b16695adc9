package applications

import (
	"time"

	"pet-adoption-api/internal/domain/addresses"
)

// Status is the workflow state of a shelter-creation application.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// Application is a user's proposal to register a new shelter. Admins decide
// it; an approval creates the shelter and grants the applicant the manager
// role. ShelterID records the shelter a past approval produced and is the
// idempotency guard against double approval.
type Application struct {
	ID string

	ApplicantUserID string
	ShelterName     string
	Address         addresses.Address
	Remarks         string

	Status     Status
	IsApproved bool

	// Set exactly once, when approval creates the shelter.
	ShelterID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Decided reports whether the application reached a terminal decision.
func (a Application) Decided() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}
