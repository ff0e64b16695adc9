package addresses

import "strings"

// Patch carries partial address input. Pointer fields: nil = leave untouched,
// pointer to empty string = clear the field.
type Patch struct {
	Street     *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

// IsZero reports whether the patch touches nothing.
func (p Patch) IsZero() bool {
	return p.Street == nil && p.City == nil && p.State == nil &&
		p.PostalCode == nil && p.Country == nil
}

// Manager owns address creation/patching for parent entities.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// CreateOrUpdate merges a patch into an existing address. Starting from the
// zero Address this is plain creation; fields the patch does not mention keep
// their current value.
func (m *Manager) CreateOrUpdate(existing Address, patch Patch) Address {
	out := existing

	if patch.Street != nil {
		out.Street = strings.TrimSpace(*patch.Street)
	}
	if patch.City != nil {
		out.City = strings.TrimSpace(*patch.City)
	}
	if patch.State != nil {
		out.State = strings.TrimSpace(*patch.State)
	}
	if patch.PostalCode != nil {
		out.PostalCode = strings.TrimSpace(*patch.PostalCode)
	}
	if patch.Country != nil {
		out.Country = strings.TrimSpace(*patch.Country)
	}

	return out
}
