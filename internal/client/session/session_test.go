package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/bcardapp/bcard/internal/client/repositories/credentials"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func storedToken(t *testing.T, db *sql.DB) []byte {
	t.Helper()
	v, err := credentials.NewSQLiteRepository(db).Get(context.Background(), credentials.KeyToken)
	require.NoError(t, err)
	return v
}

func seedToken(t *testing.T, db *sql.DB, token string) {
	t.Helper()
	err := credentials.NewSQLiteRepository(db).Set(context.Background(), credentials.KeyToken, []byte(token))
	require.NoError(t, err)
}

// ---- fakes ----

type fakeAuth struct {
	token string
	err   error

	lastEmail    string
	lastPassword string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	f.lastEmail = email
	f.lastPassword = password
	return f.token, f.err
}

type fakeSink struct {
	tokens  []string
	cleared int
}

func (f *fakeSink) SetToken(token string) { f.tokens = append(f.tokens, token) }
func (f *fakeSink) ClearToken()           { f.cleared++ }

func newStore(t *testing.T, db *sql.DB, auth *fakeAuth, sink *fakeSink, now time.Time) *Store {
	t.Helper()
	s := NewStore(db, auth, sink)
	s.now = func() time.Time { return now }
	return s
}

func validToken(t *testing.T, now time.Time) string {
	return signToken(t, Claims{
		ID:         "u1",
		Name:       "Dana Levi",
		Email:      "dana@example.com",
		IsBusiness: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
}

// ---- TESTS ----

func TestHydrate_NoCredential_StaysAnonymous(t *testing.T) {
	db := setupDB(t)
	sink := &fakeSink{}
	s := newStore(t, db, &fakeAuth{}, sink, time.Now())

	require.NoError(t, s.Hydrate(context.Background()))

	got := s.Current()
	require.False(t, got.Authenticated)
	require.Nil(t, got.Identity)
	require.Empty(t, sink.tokens)
}

func TestHydrate_ValidCredential_RestoresSession(t *testing.T) {
	db := setupDB(t)
	now := time.Now()
	token := validToken(t, now)
	seedToken(t, db, token)

	sink := &fakeSink{}
	s := newStore(t, db, &fakeAuth{}, sink, now)

	require.NoError(t, s.Hydrate(context.Background()))

	got := s.Current()
	require.True(t, got.Authenticated)
	require.NotNil(t, got.Identity)
	require.Equal(t, "u1", got.Identity.ID)
	require.Equal(t, "Dana Levi", got.Identity.Name)
	require.True(t, got.IsBusiness)
	require.False(t, got.IsAdmin)

	// the credential became the default for outgoing requests
	require.Equal(t, []string{token}, sink.tokens)
}

func TestHydrate_ExpiredCredential_ClearsStorageSilently(t *testing.T) {
	db := setupDB(t)
	now := time.Now()
	expired := signToken(t, Claims{
		ID:               "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))},
	})
	seedToken(t, db, expired)

	sink := &fakeSink{}
	s := newStore(t, db, &fakeAuth{}, sink, now)

	require.NoError(t, s.Hydrate(context.Background()))
	require.False(t, s.Current().Authenticated)
	require.Nil(t, storedToken(t, db))
	require.Empty(t, sink.tokens)
}

func TestHydrate_MalformedCredential_ClearsStorageSilently(t *testing.T) {
	db := setupDB(t)
	seedToken(t, db, "garbage")

	s := newStore(t, db, &fakeAuth{}, &fakeSink{}, time.Now())

	require.NoError(t, s.Hydrate(context.Background()))
	require.False(t, s.Current().Authenticated)
	require.Nil(t, storedToken(t, db))
}

func TestLogin_Success_PersistsAndInstallsCredential(t *testing.T) {
	db := setupDB(t)
	now := time.Now()
	token := validToken(t, now)

	auth := &fakeAuth{token: token}
	sink := &fakeSink{}
	s := newStore(t, db, auth, sink, now)

	require.NoError(t, s.Login(context.Background(), "dana@example.com", "secret"))

	require.Equal(t, "dana@example.com", auth.lastEmail)
	require.Equal(t, "secret", auth.lastPassword)

	got := s.Current()
	require.True(t, got.Authenticated)
	require.Equal(t, "u1", got.Identity.ID)

	require.Equal(t, []byte(token), storedToken(t, db))
	require.Equal(t, []string{token}, sink.tokens)
}

func TestLogin_Failure_LeavesSessionUnchanged(t *testing.T) {
	db := setupDB(t)
	sink := &fakeSink{}
	s := newStore(t, db, &fakeAuth{err: errors.New("invalid credentials")}, sink, time.Now())

	err := s.Login(context.Background(), "dana@example.com", "wrong")
	require.Error(t, err)
	require.False(t, s.Current().Authenticated)
	require.Nil(t, storedToken(t, db))
	require.Empty(t, sink.tokens)
}

func TestLogin_ReplacesPriorCredential(t *testing.T) {
	db := setupDB(t)
	now := time.Now()
	seedToken(t, db, "old-token")

	token := validToken(t, now)
	s := newStore(t, db, &fakeAuth{token: token}, &fakeSink{}, now)

	require.NoError(t, s.Login(context.Background(), "dana@example.com", "secret"))
	require.Equal(t, []byte(token), storedToken(t, db))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestLogout_ClearsEverything(t *testing.T) {
	db := setupDB(t)
	now := time.Now()
	seedToken(t, db, validToken(t, now))

	sink := &fakeSink{}
	s := newStore(t, db, &fakeAuth{}, sink, now)
	require.NoError(t, s.Hydrate(context.Background()))
	require.True(t, s.Current().Authenticated)

	require.NoError(t, s.Logout(context.Background()))

	got := s.Current()
	require.False(t, got.Authenticated)
	require.Nil(t, got.Identity)
	require.False(t, got.IsBusiness)
	require.False(t, got.IsAdmin)
	require.Nil(t, storedToken(t, db))
	require.Equal(t, 1, sink.cleared)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := Session{Authenticated: true, ExpiresAt: now.Add(-time.Second)}
	require.True(t, s.Expired(now))

	s.ExpiresAt = now.Add(time.Second)
	require.False(t, s.Expired(now))

	require.False(t, Session{}.Expired(now))
}
