package applications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/domain/addresses"
	"pet-adoption-api/internal/domain/shelters"
)

// -------------------------
// Test repo and registry
// -------------------------

type testRepo struct {
	byID map[string]Application

	updateCalls int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Application{}}
}

func (r *testRepo) Create(ctx context.Context, a Application) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) Update(ctx context.Context, a Application) error {
	r.updateCalls++
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Application, error) {
	out := []Application{}
	for _, a := range r.byID {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

type testRegistry struct {
	created  []shelters.CreateInput
	assigned map[string]string // shelterID -> userID

	createErr error
	assignErr error
}

func newTestRegistry() *testRegistry {
	return &testRegistry{assigned: map[string]string{}}
}

func (r *testRegistry) Create(ctx context.Context, in shelters.CreateInput) (shelters.Shelter, error) {
	if r.createErr != nil {
		return shelters.Shelter{}, r.createErr
	}
	r.created = append(r.created, in)
	return shelters.Shelter{ID: "shelter-1", Name: in.Name}, nil
}

func (r *testRegistry) AssignManager(ctx context.Context, shelterID, userID string) (shelters.ManagerLink, error) {
	if r.assignErr != nil {
		return shelters.ManagerLink{}, r.assignErr
	}
	r.assigned[shelterID] = userID
	return shelters.ManagerLink{ShelterID: shelterID, UserID: userID}, nil
}

func newTestService() (*Service, *testRepo, *testRegistry) {
	repo := newTestRepo()
	registry := newTestRegistry()
	return NewService(repo, registry, addresses.NewManager()), repo, registry
}

func strptr(s string) *string { return &s }

func submitPending(t *testing.T, svc *Service, applicant string) Application {
	t.Helper()
	a, err := svc.Submit(context.Background(), applicant, SubmitInput{
		ShelterName: "Happy Paws",
		Remarks:     "ten years of rescue work",
		Address: addresses.Patch{
			Street: strptr("123 Bark St"),
			City:   strptr("Lima"),
		},
	})
	require.NoError(t, err)
	return a
}

// -------------------------
// Tests
// -------------------------

func TestSubmit(t *testing.T) {
	svc, _, _ := newTestService()

	a := submitPending(t, svc, "user-1")

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, StatusPending, a.Status)
	assert.False(t, a.IsApproved)
	assert.Empty(t, a.ShelterID)
	assert.Equal(t, "Lima", a.Address.City)
}

func TestSubmit_RequiresNameAndApplicant(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, "user-1", SubmitInput{ShelterName: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Submit(ctx, "", SubmitInput{ShelterName: "Happy Paws"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStatus_FlipsFlagsWithSingleUpdate(t *testing.T) {
	svc, repo, registry := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")

	got, err := svc.SetStatus(ctx, a.ID, true)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
	assert.Equal(t, StatusApproved, got.Status)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Empty(t, registry.created, "the bare flip never creates shelters")

	got, err = svc.SetStatus(ctx, a.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsApproved)
	assert.Equal(t, StatusRejected, got.Status)
	assert.Equal(t, 2, repo.updateCalls)
}

func TestDecide_ApproveCreatesShelterAndGrantsRole(t *testing.T) {
	svc, _, registry := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")

	got, err := svc.Decide(ctx, a.ID, true)
	require.NoError(t, err)

	assert.True(t, got.IsApproved)
	assert.Equal(t, StatusApproved, got.Status)
	assert.Equal(t, "shelter-1", got.ShelterID)

	require.Len(t, registry.created, 1)
	assert.Equal(t, "Happy Paws", registry.created[0].Name)
	assert.Equal(t, "Lima", *registry.created[0].Address.City)
	assert.Equal(t, "user-1", registry.assigned["shelter-1"])
}

func TestDecide_SecondApprovalIsConflict(t *testing.T) {
	svc, _, registry := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")

	_, err := svc.Decide(ctx, a.ID, true)
	require.NoError(t, err)

	_, err = svc.Decide(ctx, a.ID, true)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, registry.created, 1, "an application produces at most one shelter")
}

func TestDecide_RejectIsJustTheFlip(t *testing.T) {
	svc, _, registry := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")

	got, err := svc.Decide(ctx, a.ID, false)
	require.NoError(t, err)

	assert.False(t, got.IsApproved)
	assert.Equal(t, StatusRejected, got.Status)
	assert.Empty(t, got.ShelterID)
	assert.Empty(t, registry.created)
}

func TestDecide_RejectThenApprove(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")

	_, err := svc.Decide(ctx, a.ID, false)
	require.NoError(t, err)

	// A rejection holds no shelter, so the admin can still reverse it.
	got, err := svc.Decide(ctx, a.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "shelter-1", got.ShelterID)
}

func TestDecide_WithdrawnIsBadState(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")
	_, err := svc.Withdraw(ctx, a.ID, "user-1")
	require.NoError(t, err)

	_, err = svc.Decide(ctx, a.ID, true)
	assert.ErrorIs(t, err, ErrBadState)
}

func TestDecide_ShelterCreationFailureLeavesApplicationPending(t *testing.T) {
	svc, repo, registry := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")
	registry.createErr = errors.New("storage down")

	_, err := svc.Decide(ctx, a.ID, true)
	require.Error(t, err)

	stored, _ := repo.GetByID(ctx, a.ID)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Empty(t, stored.ShelterID)
}

func TestDecide_RoleGrantFailureKeepsShelterID(t *testing.T) {
	svc, repo, registry := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")
	registry.assignErr = errors.New("identity provider down")

	_, err := svc.Decide(ctx, a.ID, true)
	require.Error(t, err)

	// The shelter exists and the application points at it: the guard must
	// hold so a retried approval cannot create a second shelter.
	stored, _ := repo.GetByID(ctx, a.ID)
	assert.Equal(t, "shelter-1", stored.ShelterID)

	_, err = svc.Decide(ctx, a.ID, true)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, registry.created, 1)
}

func TestWithdraw(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")

	got, err := svc.Withdraw(ctx, a.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, StatusWithdrawn, got.Status)

	// Idempotent for the applicant.
	again, err := svc.Withdraw(ctx, a.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, StatusWithdrawn, again.Status)
}

func TestWithdraw_WrongApplicantLooksLikeMissing(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")

	_, err := svc.Withdraw(ctx, a.ID, "user-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithdraw_DecidedIsBadState(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	a := submitPending(t, svc, "user-1")
	_, err := svc.Decide(ctx, a.ID, true)
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, a.ID, "user-1")
	assert.ErrorIs(t, err, ErrBadState)
}
