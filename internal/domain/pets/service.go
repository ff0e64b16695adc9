package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/shelters"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

// ShelterRef is the one thing this package needs from the shelters service:
// existence checks for the owning shelter.
type ShelterRef interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
}

type Service struct {
	repo    Repository
	shelter ShelterRef
	now     func() time.Time
}

func NewService(repo Repository, shelter ShelterRef) *Service {
	return &Service{
		repo:    repo,
		shelter: shelter,
		now:     time.Now,
	}
}

// SetShelterRef breaks the construction cycle with the shelters service,
// which consumes this service as its pet counter. Call before serving.
func (s *Service) SetShelterRef(ref ShelterRef) {
	s.shelter = ref
}

type RegisterInput struct {
	Name      string
	Species   Species
	Breed     string
	Sex       Sex
	BirthDate *time.Time
	Notes     string
}

// Register lists a new pet under a shelter, starting as available.
func (s *Service) Register(ctx context.Context, shelterID string, in RegisterInput) (Pet, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	switch in.Species {
	case SpeciesDog, SpeciesCat, SpeciesOther:
	default:
		return Pet{}, ErrInvalidInput
	}

	sh, err := s.shelter.GetByID(ctx, shelterID)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		ShelterID: sh.ID,
		Name:      strings.TrimSpace(in.Name),
		Species:   in.Species,
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Notes:     strings.TrimSpace(in.Notes),
		Status:    StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]Pet, error) {
	return s.repo.ListByShelter(ctx, shelterID)
}

// SetStatus moves a pet through the adoption states. Adopted is terminal.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	switch status {
	case StatusAvailable, StatusPending, StatusAdopted:
	default:
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	// Idempotent
	if p.Status == status {
		return p, nil
	}
	if p.Status == StatusAdopted {
		return Pet{}, ErrBadState
	}

	p.Status = status
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// CountByShelter satisfies shelters.PetCounter.
func (s *Service) CountByShelter(ctx context.Context, shelterID string) (shelters.PetCounts, error) {
	c, err := s.repo.CountByShelter(ctx, shelterID)
	if err != nil {
		return shelters.PetCounts{}, err
	}
	return shelters.PetCounts{
		Total:     c.Total,
		Available: c.Available,
		Adopted:   c.Adopted,
	}, nil
}
