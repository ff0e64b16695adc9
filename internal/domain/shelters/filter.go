package shelters

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter is the raw, user-supplied filter. All fields optional, combined
// with AND. Text fields are substring matches (case-insensitive).
type Filter struct {
	Name  string
	City  string
	State string
	Email string

	PageNumber int
	PageSize   int

	SortBy         string
	SortDescending bool
}

// Query is the normalized predicate/sort/paging triple consumed by the
// repository. It is plain data: repositories translate it into their own
// query language, the service never re-filters or re-sorts results.
type Query struct {
	Name  string
	City  string
	State string
	Email string

	SortBy   string
	SortDesc bool

	Limit  int
	Offset int
}

// sortable whitelists the fields a caller may sort by; anything else
// falls back to name.
var sortable = map[string]string{
	"name":       "name",
	"city":       "city",
	"state":      "state",
	"created_at": "created_at",
	"createdat":  "created_at",
}

// BuildQuery normalizes a Filter into a Query: trims text predicates,
// clamps paging, resolves the sort column. Deterministic for a fixed
// filter: repositories break sort ties by id ascending.
func BuildQuery(f Filter) Query {
	page := f.PageNumber
	if page < 1 {
		page = 1
	}

	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	sortBy, ok := sortable[strings.ToLower(strings.TrimSpace(f.SortBy))]
	if !ok {
		sortBy = "name"
	}

	return Query{
		Name:     strings.TrimSpace(f.Name),
		City:     strings.TrimSpace(f.City),
		State:    strings.TrimSpace(f.State),
		Email:    strings.TrimSpace(f.Email),
		SortBy:   sortBy,
		SortDesc: f.SortDescending,
		Limit:    size,
		Offset:   (page - 1) * size,
	}
}

// Matches reports whether a shelter satisfies every non-empty predicate.
// Shared by the in-memory repository and useful for tests.
func (q Query) Matches(s Shelter) bool {
	if q.Name != "" && !containsFold(s.Name, q.Name) {
		return false
	}
	if q.City != "" && !containsFold(s.Address.City, q.City) {
		return false
	}
	if q.State != "" && !containsFold(s.Address.State, q.State) {
		return false
	}
	if q.Email != "" && !containsFold(s.Email, q.Email) {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
