package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/addresses"
	"pet-adoption-api/internal/domain/shelters"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

// ShelterRegistry is what the approval workflow needs from the shelters
// service: create the shelter, hand the applicant the manager role.
type ShelterRegistry interface {
	Create(ctx context.Context, in shelters.CreateInput) (shelters.Shelter, error)
	AssignManager(ctx context.Context, shelterID, userID string) (shelters.ManagerLink, error)
}

type Service struct {
	repo     Repository
	registry ShelterRegistry
	addr     *addresses.Manager
	now      func() time.Time
}

func NewService(repo Repository, registry ShelterRegistry, addr *addresses.Manager) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		addr:     addr,
		now:      time.Now,
	}
}

type SubmitInput struct {
	ShelterName string
	Address     addresses.Patch
	Remarks     string
}

func (s *Service) Submit(ctx context.Context, applicantUserID string, in SubmitInput) (Application, error) {
	applicantUserID = strings.TrimSpace(applicantUserID)
	name := strings.TrimSpace(in.ShelterName)
	if applicantUserID == "" || name == "" {
		return Application{}, ErrInvalidInput
	}

	now := s.now()
	a := Application{
		ID:              uuid.NewString(),
		ApplicantUserID: applicantUserID,
		ShelterName:     name,
		Address:         s.addr.CreateOrUpdate(addresses.Address{}, in.Address),
		Remarks:         strings.TrimSpace(in.Remarks),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Application, error) {
	return s.repo.List(ctx, f)
}

// Withdraw lets the applicant pull a still-pending application.
func (s *Service) Withdraw(ctx context.Context, id, applicantUserID string) (Application, error) {
	id = strings.TrimSpace(id)
	applicantUserID = strings.TrimSpace(applicantUserID)
	if id == "" || applicantUserID == "" {
		return Application{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.ApplicantUserID != applicantUserID {
		return Application{}, ErrNotFound
	}

	// Idempotent
	if a.Status == StatusWithdrawn {
		return a, nil
	}
	if a.Decided() {
		return Application{}, ErrBadState
	}

	a.Status = StatusWithdrawn
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// SetStatus is the bare flag flip: approve/reject bookkeeping on the record
// itself, exactly one repository update, no side effects beyond it. The
// surrounding workflow (Decide) owns shelter creation and role grants.
func (s *Service) SetStatus(ctx context.Context, id string, approve bool) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}

	a.IsApproved = approve
	if approve {
		a.Status = StatusApproved
	} else {
		a.Status = StatusRejected
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// Decide is the admin decision workflow. Rejection is just the flag flip.
// Approval additionally creates the shelter from the proposal and grants the
// applicant the manager role. The ShelterID guard makes approval idempotent:
// an application that already produced a shelter cannot produce another, even
// when two approvals race past the status check.
//
// Shelter creation, role grant and the application update are separate
// persistence operations, not one transaction; the ordering (create shelter,
// record ShelterID, grant role) keeps a crash in between recoverable.
func (s *Service) Decide(ctx context.Context, id string, approve bool) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.Status == StatusWithdrawn {
		return Application{}, ErrBadState
	}
	if a.ShelterID != "" {
		return Application{}, ErrConflict
	}

	if !approve {
		return s.SetStatus(ctx, id, false)
	}

	sh, err := s.registry.Create(ctx, shelters.CreateInput{
		Name: a.ShelterName,
		Address: addresses.Patch{
			Street:     &a.Address.Street,
			City:       &a.Address.City,
			State:      &a.Address.State,
			PostalCode: &a.Address.PostalCode,
			Country:    &a.Address.Country,
		},
	})
	if err != nil {
		return Application{}, err
	}

	now := s.now()
	a.IsApproved = true
	a.Status = StatusApproved
	a.ShelterID = sh.ID
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, err
	}

	if _, err := s.registry.AssignManager(ctx, sh.ID, a.ApplicantUserID); err != nil {
		// The shelter exists and the application points at it; only the role
		// grant is missing. Surface the failure, a retry path is admin
		// re-assignment via POST /shelters/{id}/managers.
		return Application{}, err
	}
	return a, nil
}
