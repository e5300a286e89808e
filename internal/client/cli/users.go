package cli

import (
	"context"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
)

// SetRole changes the role of user id after confirmation.
func (a *App) SetRole(ctx context.Context, id string, role models.Role) error {
	viewCtx, ok := a.enterView(ctx, AdminPath, adminOnly)
	if !ok {
		return nil
	}
	if err := a.users.SetRole(viewCtx, models.ID(id), role); err != nil {
		return err
	}
	a.printUsers()
	return nil
}

// ToggleRole switches user id to the other role after confirmation.
func (a *App) ToggleRole(ctx context.Context, id string) error {
	viewCtx, ok := a.enterView(ctx, AdminPath, adminOnly)
	if !ok {
		return nil
	}
	if err := a.users.ToggleRole(viewCtx, models.ID(id)); err != nil {
		return err
	}
	a.printUsers()
	return nil
}
