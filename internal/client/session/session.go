// Package session holds the identity and role claims derived from the
// bearer credential. It is the single source of truth for "who is acting"
// and owns the persisted credential's lifecycle.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bcardapp/bcard/internal/client/repositories/credentials"
	"github.com/bcardapp/bcard/internal/dbx"
)

// Identity describes the signed-in user as claimed by the credential.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Session is a value snapshot of the authentication state.
// Invariant: Authenticated == (Identity != nil); a Session is either fully
// authenticated or fully anonymous, never in between.
type Session struct {
	Authenticated bool
	Identity      *Identity
	IsBusiness    bool
	IsAdmin       bool

	// ExpiresAt mirrors the credential's expiry claim so views can re-check
	// it after hydration; zero when the credential carries none.
	ExpiresAt time.Time
}

// Expired reports whether the credential behind the session has expired.
func (s Session) Expired(now time.Time) bool {
	return s.Authenticated && !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// Authenticator performs the remote login call. Satisfied by api.Client.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenSink receives the default outgoing-request credential.
// Satisfied by api.Client.
type TokenSink interface {
	SetToken(token string)
	ClearToken()
}

// Store owns the in-memory session and the persisted credential backing it.
type Store struct {
	db      *sql.DB
	auth    Authenticator
	sink    TokenSink
	now     func() time.Time
	current Session
}

// NewStore builds a session store over the local credential database, the
// login gateway, and the sink for the default bearer credential.
func NewStore(db *sql.DB, auth Authenticator, sink TokenSink) *Store {
	return &Store{db: db, auth: auth, sink: sink, now: time.Now}
}

func (s *Store) credsRepo() credentials.Repository {
	return credentials.NewSQLiteRepository(s.db)
}

// Current returns the session snapshot.
func (s *Store) Current() Session { return s.current }

// Hydrate restores the session from a persisted credential, if one exists.
// A malformed or expired credential is treated as "no session": it is
// deleted and Hydrate returns nil, leaving the session anonymous. Only
// storage faults surface as errors. No network call is made.
func (s *Store) Hydrate(ctx context.Context) error {
	repo := s.credsRepo()

	token, err := repo.Get(ctx, credentials.KeyToken)
	if err != nil {
		return fmt.Errorf("reading credential: %w", err)
	}
	if token == nil {
		return nil
	}

	claims, err := DecodeToken(string(token), s.now())
	if err != nil {
		// Self-heal: a credential we cannot trust is as good as none.
		_ = repo.Delete(ctx, credentials.KeyToken)
		s.reset()
		return nil
	}

	s.install(string(token), claims)
	return nil
}

// Login authenticates against the service, persists the returned credential
// (atomically replacing any prior one), and installs it as the default for
// outgoing requests. On failure the session is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	claims, err := DecodeToken(token, s.now())
	if err != nil {
		return fmt.Errorf("service returned an unusable credential: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, credentials.KeyToken); err != nil {
			return err
		}
		return repo.Set(ctx, credentials.KeyToken, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}

	s.install(token, claims)
	return nil
}

// Logout clears the persisted credential, the default request credential,
// and the in-memory session. The session is reset even when deleting the
// persisted credential fails. No network call is made.
func (s *Store) Logout(ctx context.Context) error {
	err := s.credsRepo().Delete(ctx, credentials.KeyToken)
	s.sink.ClearToken()
	s.reset()
	return err
}

func (s *Store) install(token string, claims *Claims) {
	s.current = Session{
		Authenticated: true,
		Identity:      &Identity{ID: claims.ID, Name: claims.Name, Email: claims.Email},
		IsBusiness:    claims.IsBusiness,
		IsAdmin:       claims.IsAdmin,
	}
	if claims.ExpiresAt != nil {
		s.current.ExpiresAt = claims.ExpiresAt.Time
	}
	s.sink.SetToken(token)
}

func (s *Store) reset() {
	s.current = Session{}
}
