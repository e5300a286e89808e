package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/client/mutator"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Events(ctx context.Context) error
	Admin(ctx context.Context) error
	AddEvent(ctx context.Context) error
	EditEvent(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error
	SetRole(ctx context.Context, id string, role models.Role) error
	ToggleRole(ctx context.Context, id string) error
}

// runREPL starts a simple read–eval–print loop for the EventFlow CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Everything the loop itself prints goes through
// printLine, which the app points at its console. The loop exits on EOF or
// when the user types "exit" or "quit". Views enforce their own access rules, so every command is
// dispatched regardless of the session; help only lists what makes sense.
//
//	Always:       help, whoami, exit | quit
//	Logged out:   signup, login
//	Logged in:    events, logout
//	Admin:        admin, addevent, editevent <id>, delevent <id>,
//	              promote <userID>, demote <userID>, togglerole <userID>
//
// Handler errors are printed and the loop goes on; a declined confirmation
// prints "Cancelled.".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, printLine func(a ...any)) {
	for ctx.Err() == nil {
		printLine(fmt.Sprintf("ef %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printLine(helpText(a))

		case "signup", "register":
			report(printLine, a.Register(ctx))

		case "login":
			report(printLine, a.Login(ctx))

		case "logout":
			report(printLine, a.Logout(ctx))

		case "whoami":
			report(printLine, a.WhoAmI(ctx))

		case "events", "home":
			report(printLine, a.Events(ctx))

		case "admin":
			report(printLine, a.Admin(ctx))

		case "addevent":
			report(printLine, a.AddEvent(ctx))

		case "editevent":
			if len(args) != 1 {
				printLine("Usage: editevent <id>")
				continue
			}
			report(printLine, a.EditEvent(ctx, args[0]))

		case "delevent":
			if len(args) != 1 {
				printLine("Usage: delevent <id>")
				continue
			}
			report(printLine, a.DeleteEvent(ctx, args[0]))

		case "promote", "demote":
			if len(args) != 1 {
				printLine(fmt.Sprintf("Usage: %s <userID>", cmd))
				continue
			}
			role := models.RoleAdmin
			if cmd == "demote" {
				role = models.RoleNormal
			}
			report(printLine, a.SetRole(ctx, args[0], role))

		case "togglerole":
			if len(args) != 1 {
				printLine("Usage: togglerole <userID>")
				continue
			}
			report(printLine, a.ToggleRole(ctx, args[0]))

		case "exit", "quit":
			printLine("Bye!")
			return

		default:
			printLine("Unknown command:", cmd)
		}
	}
}

func helpText(a execIface) string {
	switch {
	case a.isAdmin():
		return "Available commands: events, admin, addevent, editevent <id>, delevent <id>, promote <userID>, demote <userID>, togglerole <userID>, whoami, logout, exit"
	case a.isLoggedIn():
		return "Available commands: events, whoami, logout, exit"
	default:
		return "Available commands: signup, login, exit"
	}
}

func report(printLine func(a ...any), err error) {
	switch {
	case err == nil:
	case errors.Is(err, mutator.ErrDeclined):
		printLine("Cancelled.")
	default:
		printLine("Error:", err)
	}
}
