package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/bcardapp/bcard/internal/client/api"
	"github.com/bcardapp/bcard/internal/client/cards"
	"github.com/bcardapp/bcard/internal/client/config"
	"github.com/bcardapp/bcard/internal/client/guard"
	"github.com/bcardapp/bcard/internal/client/repositories/credentials"
	"github.com/bcardapp/bcard/internal/client/session"
	"github.com/bcardapp/bcard/internal/logging"
)

// App wires the session store, the card collection store, and the remote
// gateway into the REPL command surface.
type App struct {
	config  *config.Config
	log     logging.Logger
	api     api.Client
	session *session.Store
	cards   *cards.Store
	db      *sql.DB
	page    int
	reader  *bufio.Reader
	now     func() time.Time
}

// NewApp opens the local credential database and constructs the stores and
// the HTTP gateway from cfg.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := credentials.OpenDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout)

	return &App{
		config:  cfg,
		log:     log,
		api:     apiClient,
		session: session.NewStore(db, apiClient, apiClient),
		cards:   cards.NewStore(),
		db:      db,
		page:    1,
		reader:  bufio.NewReader(os.Stdin),
		now:     time.Now,
	}, nil
}

// Run hydrates the session from the persisted credential and hands control
// to the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	if err := a.session.Hydrate(ctx); err != nil {
		a.log.Warn(ctx, "session hydration failed", "error", err)
	}
	if s := a.session.Current(); s.Authenticated {
		a.notify("Welcome back,", s.Identity.Name)
	}
	printlnFn("BCard CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Close releases the local database.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated
}

func (a *App) status() string {
	s := a.session.Current()
	if !s.Authenticated {
		return ""
	}
	out := s.Identity.Name
	if s.IsAdmin {
		out += " admin"
	} else if s.IsBusiness {
		out += " business"
	}
	return "(" + out + ")"
}

func (a *App) pageSize() int {
	if a.config != nil && a.config.PageSize > 0 {
		return a.config.PageSize
	}
	return cards.DefaultPageSize
}

// notify prints a transient user-facing notice.
func (a *App) notify(args ...any) {
	printlnFn(args...)
}

// reportError surfaces a failed gateway call as a notice, preferring the
// server-supplied message, and logs the underlying error.
func (a *App) reportError(ctx context.Context, err error, fallback string) {
	a.notify(api.UserMessage(err, fallback))
	a.log.Error(ctx, fallback, "error", err)
}

// gate evaluates the access guard for the required capability, rendering
// the "redirect" as a notice. A session whose credential expired mid-run is
// logged out first, mirroring the expiry check at hydration.
func (a *App) gate(ctx context.Context, c guard.Capability) bool {
	if s := a.session.Current(); s.Expired(a.now()) {
		_ = a.session.Logout(ctx)
		a.notify("Your session has expired. Please sign in again.")
	}

	d := guard.Check(a.session.Current(), c)
	switch d.Verdict {
	case guard.Allow:
		return true
	case guard.RedirectSignIn:
		a.notify(d.Notice)
		a.notify("Use 'login' to sign in.")
		return false
	default:
		a.notify(d.Notice)
		return false
	}
}
