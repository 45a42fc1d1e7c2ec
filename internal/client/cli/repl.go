package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Page(ctx context.Context, arg string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Like(ctx context.Context, id string) error
	Favorites(ctx context.Context) error
	MyCards(ctx context.Context) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Users(ctx context.Context) error
	SetBusiness(ctx context.Context, id string) error
	RemoveUser(ctx context.Context, id string) error
}

// runREPL starts a read–eval–print loop for the bcard CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands available to everyone:
//
//	help, list (l), search <term>, page <n>, next, prev, show <id>,
//	register, login, exit | quit
//
// Commands requiring a session (further gated by role inside the handlers):
//
//	like <id>, favorites, mycards, create, edit <id>, delete <id>,
//	users, setbiz <id>, rmuser <id>, whoami, logout
//
// Errors returned by command handlers are ignored here; handlers surface
// their own notices. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bcard %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Browse: (l)ist, search <term>, page <n>, next, prev, show <id>")
			if a.isLoggedIn() {
				printlnFn("Account: like <id>, favorites, mycards, create, edit <id>, delete <id>, whoami, logout")
				printlnFn("Admin: users, setbiz <id>, rmuser <id>")
				printlnFn("Other: exit")
			} else {
				printlnFn("Account: register, login")
				printlnFn("Other: exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			// No argument clears the search.
			_ = a.Search(ctx, strings.Join(args, " "))

		case "page":
			if len(args) == 0 {
				printlnFn("Usage: page <n>")
				continue
			}
			_ = a.Page(ctx, args[0])

		case "next":
			_ = a.Next(ctx)

		case "prev":
			_ = a.Prev(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "like":
			if len(args) == 0 {
				printlnFn("Usage: like <id>")
				continue
			}
			_ = a.Like(ctx, args[0])

		case "favorites":
			_ = a.Favorites(ctx)

		case "mycards":
			_ = a.MyCards(ctx)

		case "create":
			_ = a.Create(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "users":
			_ = a.Users(ctx)

		case "setbiz":
			if len(args) == 0 {
				printlnFn("Usage: setbiz <id>")
				continue
			}
			_ = a.SetBusiness(ctx, args[0])

		case "rmuser":
			if len(args) == 0 {
				printlnFn("Usage: rmuser <id>")
				continue
			}
			_ = a.RemoveUser(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
