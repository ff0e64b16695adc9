package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/domain/addresses"
	"pet-adoption-api/internal/domain/shelters"
)

func seedShelters(t *testing.T, repo shelters.Repository) {
	t.Helper()
	ctx := context.Background()
	for _, s := range []shelters.Shelter{
		{ID: "a", Name: "Whiskers Haven", Address: addresses.Address{City: "Lima"}},
		{ID: "b", Name: "happy paws", Address: addresses.Address{City: "Cusco"}},
		{ID: "c", Name: "Happy Paws", Address: addresses.Address{City: "Lima"}},
	} {
		require.NoError(t, repo.Create(ctx, s))
	}
}

func ids(list []shelters.Shelter) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestShelterRepo_List_SortsWithIDTieBreak(t *testing.T) {
	repo := NewShelterRepo()
	seedShelters(t, repo)
	ctx := context.Background()

	got, err := repo.List(ctx, shelters.BuildQuery(shelters.Filter{}))
	require.NoError(t, err)
	// Name sort is case-insensitive, equal names fall back to id ascending.
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))

	got, err = repo.List(ctx, shelters.BuildQuery(shelters.Filter{SortDescending: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got), "tie break stays ascending under descending sort")
}

func TestShelterRepo_List_FiltersAndPages(t *testing.T) {
	repo := NewShelterRepo()
	seedShelters(t, repo)
	ctx := context.Background()

	got, err := repo.List(ctx, shelters.BuildQuery(shelters.Filter{City: "lima"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(got))

	got, err = repo.List(ctx, shelters.BuildQuery(shelters.Filter{PageNumber: 2, PageSize: 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(got))

	got, err = repo.List(ctx, shelters.BuildQuery(shelters.Filter{PageNumber: 9, PageSize: 2}))
	require.NoError(t, err)
	assert.Empty(t, got, "page past the end is empty, not an error")
}

func TestShelterRepo_SoftDeletedInvisible(t *testing.T) {
	repo := NewShelterRepo()
	seedShelters(t, repo)
	ctx := context.Background()

	s, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	s.IsDeleted = true
	require.NoError(t, repo.Delete(ctx, s))

	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, shelters.ErrNotFound)

	got, err := repo.List(ctx, shelters.BuildQuery(shelters.Filter{}))
	require.NoError(t, err)
	assert.NotContains(t, ids(got), "a")

	// Double delete reports missing, matching reads.
	assert.ErrorIs(t, repo.Delete(ctx, s), shelters.ErrNotFound)
}
