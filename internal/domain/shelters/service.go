package shelters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/addresses"
	"pet-adoption-api/internal/ports/identity"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAggregation  = errors.New("metrics aggregation failed")
)

type Service struct {
	repo     Repository
	managers ManagerRepository
	addr     *addresses.Manager
	roles    identity.RoleGranter
	sources  MetricsSources
	now      func() time.Time
}

func NewService(
	repo Repository,
	managers ManagerRepository,
	addr *addresses.Manager,
	roles identity.RoleGranter,
	sources MetricsSources,
) *Service {
	return &Service{
		repo:     repo,
		managers: managers,
		addr:     addr,
		roles:    roles,
		sources:  sources,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name        string
	Description string
	PhoneNumber string
	Email       string
	Website     string
	DonationURL string
	Address     addresses.Patch
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Shelter, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Shelter{}, ErrInvalidInput
	}

	now := s.now()
	sh := Shelter{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Email:       strings.TrimSpace(in.Email),
		Website:     strings.TrimSpace(in.Website),
		DonationURL: strings.TrimSpace(in.DonationURL),
		Address:     s.addr.CreateOrUpdate(addresses.Address{}, in.Address),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Shelter{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List returns one page of shelters for the given filter. Matching, ordering
// and paging all happen in the repository; the page comes back as-is.
func (s *Service) List(ctx context.Context, f Filter) ([]Shelter, error) {
	return s.repo.List(ctx, BuildQuery(f))
}

type UpdateInput struct {
	// Pointer fields: nil = leave untouched.
	Name        *string
	Description *string
	PhoneNumber *string
	Email       *string
	Website     *string
	DonationURL *string
	Address     addresses.Patch
}

// Update applies a partial update. Absent fields keep their value; address
// sub-fields merge into the existing address rather than replacing it.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Shelter, error) {
	sh, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Shelter{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Shelter{}, ErrInvalidInput
		}
		sh.Name = name
	}
	if in.Description != nil {
		sh.Description = strings.TrimSpace(*in.Description)
	}
	if in.PhoneNumber != nil {
		sh.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Email != nil {
		sh.Email = strings.TrimSpace(*in.Email)
	}
	if in.Website != nil {
		sh.Website = strings.TrimSpace(*in.Website)
	}
	if in.DonationURL != nil {
		sh.DonationURL = strings.TrimSpace(*in.DonationURL)
	}

	sh.Address = s.addr.CreateOrUpdate(sh.Address, in.Address)
	sh.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

// Delete soft-deletes. The IsDeleted flip is this service's responsibility,
// the repository only persists the flagged entity. Manager links go with the
// shelter; role revocation at the identity provider is best-effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	sh, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}

	sh.IsDeleted = true
	sh.UpdatedAt = s.now()

	if err := s.repo.Delete(ctx, sh); err != nil {
		return err
	}

	links, err := s.managers.ListByShelter(ctx, sh.ID)
	if err != nil {
		return err
	}
	for _, link := range links {
		_ = s.roles.RevokeShelterRole(ctx, link.UserID, sh.ID)
	}
	return s.managers.RemoveByShelter(ctx, sh.ID)
}

// Metrics checks shelter existence first and short-circuits on a miss; the
// pet/follower/review sources are never queried for unknown shelters. Any
// source failure fails the whole call, there are no partial metrics.
func (s *Service) Metrics(ctx context.Context, shelterID string) (Metrics, error) {
	sh, err := s.repo.GetByID(ctx, strings.TrimSpace(shelterID))
	if err != nil {
		return Metrics{}, err
	}

	pets, err := s.sources.Pets.CountByShelter(ctx, sh.ID)
	if err != nil {
		return Metrics{}, fmt.Errorf("%w: pets: %v", ErrAggregation, err)
	}

	followers, err := s.sources.Followers.CountFollowers(ctx, sh.ID)
	if err != nil {
		return Metrics{}, fmt.Errorf("%w: followers: %v", ErrAggregation, err)
	}

	reviews, err := s.sources.Reviews.RatingSummary(ctx, sh.ID)
	if err != nil {
		return Metrics{}, fmt.Errorf("%w: reviews: %v", ErrAggregation, err)
	}

	return Metrics{
		ShelterID:     sh.ID,
		TotalPets:     pets.Total,
		AvailablePets: pets.Available,
		AdoptedPets:   pets.Adopted,
		FollowerCount: followers,
		AverageRating: reviews.Average,
		ReviewCount:   reviews.Count,
	}, nil
}

// AssignManager links a user to a shelter and grants the role at the identity
// provider. Assigning an existing manager again is a conflict, which keeps the
// approval workflow free of duplicate links.
func (s *Service) AssignManager(ctx context.Context, shelterID, userID string) (ManagerLink, error) {
	shelterID = strings.TrimSpace(shelterID)
	userID = strings.TrimSpace(userID)
	if shelterID == "" || userID == "" {
		return ManagerLink{}, ErrInvalidInput
	}

	sh, err := s.repo.GetByID(ctx, shelterID)
	if err != nil {
		return ManagerLink{}, err
	}

	exists, err := s.managers.Exists(ctx, sh.ID, userID)
	if err != nil {
		return ManagerLink{}, err
	}
	if exists {
		return ManagerLink{}, ErrConflict
	}

	link := ManagerLink{
		ShelterID: sh.ID,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.managers.Add(ctx, link); err != nil {
		return ManagerLink{}, err
	}

	// Link and role grant are two persistence operations, not one
	// transaction. A failed grant leaves the link in place; re-assigning
	// the same manager reports a conflict, so recovery goes through revoke.
	if err := s.roles.AssignShelterRole(ctx, userID, sh.ID); err != nil {
		return ManagerLink{}, err
	}
	return link, nil
}

func (s *Service) RevokeManager(ctx context.Context, shelterID, userID string) error {
	shelterID = strings.TrimSpace(shelterID)
	userID = strings.TrimSpace(userID)
	if shelterID == "" || userID == "" {
		return ErrInvalidInput
	}

	exists, err := s.managers.Exists(ctx, shelterID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	if err := s.managers.Remove(ctx, shelterID, userID); err != nil {
		return err
	}
	_ = s.roles.RevokeShelterRole(ctx, userID, shelterID)
	return nil
}

func (s *Service) ListManagers(ctx context.Context, shelterID string) ([]ManagerLink, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.repo.GetByID(ctx, shelterID); err != nil {
		return nil, err
	}
	return s.managers.ListByShelter(ctx, shelterID)
}

// IsManager reports whether the user manages the shelter. Used by handlers
// for authorization; admins bypass this check there.
func (s *Service) IsManager(ctx context.Context, shelterID, userID string) (bool, error) {
	shelterID = strings.TrimSpace(shelterID)
	userID = strings.TrimSpace(userID)
	if shelterID == "" || userID == "" {
		return false, nil
	}
	return s.managers.Exists(ctx, shelterID, userID)
}
