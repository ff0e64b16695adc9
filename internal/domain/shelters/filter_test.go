package shelters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pet-adoption-api/internal/domain/addresses"
)

func TestBuildQuery_Defaults(t *testing.T) {
	q := BuildQuery(Filter{})

	assert.Equal(t, DefaultPageSize, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, "name", q.SortBy)
	assert.False(t, q.SortDesc)
}

func TestBuildQuery_ClampsPaging(t *testing.T) {
	q := BuildQuery(Filter{PageNumber: -3, PageSize: 0})
	assert.Equal(t, DefaultPageSize, q.Limit)
	assert.Equal(t, 0, q.Offset)

	q = BuildQuery(Filter{PageNumber: 1, PageSize: 10_000})
	assert.Equal(t, MaxPageSize, q.Limit)

	q = BuildQuery(Filter{PageNumber: 3, PageSize: 10})
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 20, q.Offset)
}

func TestBuildQuery_SortWhitelist(t *testing.T) {
	assert.Equal(t, "city", BuildQuery(Filter{SortBy: "City"}).SortBy)
	assert.Equal(t, "created_at", BuildQuery(Filter{SortBy: "createdAt"}).SortBy)
	// unknown columns fall back to name, never reach the repository raw
	assert.Equal(t, "name", BuildQuery(Filter{SortBy: "id; DROP TABLE shelters"}).SortBy)
}

func TestBuildQuery_TrimsPredicates(t *testing.T) {
	q := BuildQuery(Filter{Name: "  Paws  ", City: " Lima "})
	assert.Equal(t, "Paws", q.Name)
	assert.Equal(t, "Lima", q.City)
}

func TestQuery_Matches(t *testing.T) {
	sh := Shelter{
		Name:  "Happy Paws Rescue",
		Email: "contact@happypaws.org",
		Address: addresses.Address{
			City:  "Lima",
			State: "LI",
		},
	}

	assert.True(t, Query{}.Matches(sh))
	assert.True(t, Query{Name: "paws"}.Matches(sh))
	assert.True(t, Query{Name: "PAWS", City: "lim"}.Matches(sh))
	assert.True(t, Query{Email: "happypaws"}.Matches(sh))

	assert.False(t, Query{Name: "whiskers"}.Matches(sh))
	assert.False(t, Query{Name: "paws", City: "Cusco"}.Matches(sh))
	assert.False(t, Query{State: "AR"}.Matches(sh))
}
