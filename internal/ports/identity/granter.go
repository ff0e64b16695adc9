package identity

import "context"

// RoleGranter is the narrow contract against the external identity provider.
// The marketplace never manages users itself; it only asks the provider to
// attach or detach the shelter-manager role for a user/shelter pair.
type RoleGranter interface {
	AssignShelterRole(ctx context.Context, userID, shelterID string) error
	RevokeShelterRole(ctx context.Context, userID, shelterID string) error
}
