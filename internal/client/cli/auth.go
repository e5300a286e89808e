package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventflow/internal/client/client"
	"github.com/dmitrijs2005/eventflow/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and creates an account.
// The user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	a.leaveView()

	name, err := getSimpleText(a.reader, "Enter name", a.console.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.console.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.console.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, name, email, string(password)); err != nil {
		var se *client.StatusError
		if errors.As(err, &se) && se.Detail != "" {
			a.console.Alert(se.Detail)
		}
		return fmt.Errorf("signup: %w", err)
	}

	a.console.Println("Registration successful! Please log in.")
	a.router.Navigate(common.LoginPath)
	return nil
}

// Login prompts for credentials, exchanges them for a token and installs it
// in the session. The current view is left first. On success the events
// view is opened.
func (a *App) Login(ctx context.Context) error {
	// the view on screen was guarded for the previous identity
	a.leaveView()

	email, err := getSimpleText(a.reader, "Enter email", a.console.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.console.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.console.Alert("Login failed. Please check your credentials.")
		}
		return fmt.Errorf("login: %w", err)
	}

	if err := a.session.Login(ctx, token); err != nil {
		return err
	}

	a.console.Println("Login successful")
	return a.Events(ctx)
}

// Logout closes the current view, forgets the credential and returns to the
// login view. It is a no-op when already logged out.
func (a *App) Logout(ctx context.Context) error {
	a.leaveView()
	err := a.session.Logout(ctx)
	a.router.Navigate(common.LoginPath)
	return err
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Snapshot()
	if !s.IsAuthenticated() {
		a.console.Println("Not logged in")
		return nil
	}
	a.console.Printf("%s (%s)\n", s.Identity.Email, s.Identity.Role)
	return nil
}
