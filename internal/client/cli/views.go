package cli

import (
	"context"

	"github.com/dmitrijs2005/eventflow/internal/client/gate"
	"github.com/dmitrijs2005/eventflow/internal/client/models"
)

const (
	HomePath  = "/"
	AdminPath = "/admin"

	msgEventsLoadFailed = "Failed to load events."
	msgUsersLoadFailed  = "Failed to fetch users."
	msgNoEvents         = "No events found."
)

var adminOnly = gate.RequireRole(models.RoleAdmin)

// Events shows the upcoming events to any signed-in user.
func (a *App) Events(ctx context.Context) error {
	viewCtx, ok := a.enterView(ctx, HomePath, gate.Authenticated)
	if !ok {
		return nil
	}
	a.refreshEvents(viewCtx)
	return nil
}

// Admin shows the dashboard: all events and the user list.
func (a *App) Admin(ctx context.Context) error {
	viewCtx, ok := a.enterView(ctx, AdminPath, adminOnly)
	if !ok {
		return nil
	}
	a.refreshEvents(viewCtx)
	a.refreshUsers(viewCtx)
	return nil
}

// refreshEvents refetches and prints the events. Failures are shown in
// place of the list.
func (a *App) refreshEvents(ctx context.Context) {
	if err := a.events.Refetch(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		a.log.Warn(ctx, "list events", "err", err)
	}
	a.printEvents()
}

func (a *App) refreshUsers(ctx context.Context) {
	if err := a.users.Refetch(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		a.log.Warn(ctx, "list users", "err", err)
	}
	a.printUsers()
}

func (a *App) printEvents() {
	st := a.events.State()
	if st.Err != nil {
		a.console.Println(msgEventsLoadFailed)
		return
	}
	if len(st.Items) == 0 {
		a.console.Println(msgNoEvents)
		return
	}
	a.console.Println("Upcoming Events")
	for _, e := range st.Items {
		a.console.Printf("[%s] %s | %s %s\n", e.ID, e.Title, e.DisplayDate(), e.Time)
		if e.Description != "" {
			a.console.Printf("    %s\n", e.Description)
		}
		a.console.Printf("    image: %s\n", e.DisplayImageURL())
	}
}

func (a *App) printUsers() {
	st := a.users.State()
	if st.Err != nil {
		a.console.Println(msgUsersLoadFailed)
		return
	}
	a.console.Println("User Management")
	for _, u := range st.Items {
		a.console.Printf("[%s] %s <%s> %s\n", u.ID, u.Name, u.Email, u.Role)
	}
}
