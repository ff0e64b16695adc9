package local

import (
	"context"
	"strings"
	"sync"
)

// Granter is the in-memory identity.RoleGranter used in dev mode and tests.
// It records grants so tests can assert on them.
type Granter struct {
	mu     sync.Mutex
	grants map[string]map[string]bool // userID -> shelterID -> granted
}

func NewGranter() *Granter {
	return &Granter{grants: make(map[string]map[string]bool)}
}

func (g *Granter) AssignShelterRole(_ context.Context, userID, shelterID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	userID = strings.TrimSpace(userID)
	shelterID = strings.TrimSpace(shelterID)
	if g.grants[userID] == nil {
		g.grants[userID] = make(map[string]bool)
	}
	g.grants[userID][shelterID] = true
	return nil
}

func (g *Granter) RevokeShelterRole(_ context.Context, userID, shelterID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m := g.grants[strings.TrimSpace(userID)]; m != nil {
		delete(m, strings.TrimSpace(shelterID))
	}
	return nil
}

// HasRole reports whether a grant is recorded. Test helper.
func (g *Granter) HasRole(userID, shelterID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.grants[userID][shelterID]
}
