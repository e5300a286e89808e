package mutator

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
)

// ErrUnknownUser is returned when a user id is not in the last read list.
var ErrUnknownUser = errors.New("unknown user")

const (
	msgRoleUpdated = "User role updated successfully!"
	msgRoleFailed  = "Failed to update role."
)

// ConfirmRoleChange is the question asked before changing a user's role.
func ConfirmRoleChange(role models.Role) string {
	return fmt.Sprintf("Are you sure you want to change this user's role to %s?", role)
}

// UsersAPI is the part of the API client the users collection calls.
type UsersAPI interface {
	ListUsers(ctx context.Context, credential string) ([]models.UserRecord, error)
	UpdateRole(ctx context.Context, credential string, id models.ID, role models.Role) error
}

type Users struct {
	*Collection[models.UserRecord]
	api UsersAPI
}

func NewUsers(api UsersAPI, deps Deps) *Users {
	return &Users{
		Collection: NewCollection[models.UserRecord]("users", api.ListUsers, deps),
		api:        api,
	}
}

// SetRole changes the role of user id after the user confirms the target role.
func (u *Users) SetRole(ctx context.Context, id models.ID, role models.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("set role: unknown role %q", role)
	}
	return u.Mutate(ctx, Op{
		Name:    "set role",
		Confirm: ConfirmRoleChange(role),
		Success: msgRoleUpdated,
		Failure: msgRoleFailed,
		Call: func(ctx context.Context, credential string) error {
			return u.api.UpdateRole(ctx, credential, id, role)
		},
	})
}

// ToggleRole flips user id between normal and admin, the way the dashboard's
// role button does. The list is read first when it has never been loaded.
func (u *Users) ToggleRole(ctx context.Context, id models.ID) error {
	if !u.State().Loaded {
		if err := u.Refetch(ctx); err != nil {
			return err
		}
	}
	user, ok := u.Find(id)
	if !ok {
		return fmt.Errorf("toggle role: user %s: %w", id, ErrUnknownUser)
	}
	return u.SetRole(ctx, id, user.Role.Opposite())
}

// Find returns the cached user with id.
func (u *Users) Find(id models.ID) (models.UserRecord, bool) {
	for _, user := range u.State().Items {
		if user.ID == id {
			return user, true
		}
	}
	return models.UserRecord{}, false
}
