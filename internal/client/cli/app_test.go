package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/bcardapp/bcard/internal/client/cards"
	"github.com/bcardapp/bcard/internal/client/config"
	"github.com/bcardapp/bcard/internal/client/models"
	"github.com/bcardapp/bcard/internal/client/session"
	"github.com/bcardapp/bcard/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- fakes ----

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// fakeClient is an in-memory stand-in for the remote gateway. Each method
// returns the canned value and records the call.
type fakeClient struct {
	token     string
	setTokens []string
	cleared   int

	loginToken string
	loginErr   error

	signupErr error
	signupReq models.SignupRequest

	cardsList []models.Card
	cardsErr  error

	cardByID map[string]models.Card

	myCardsList []models.Card
	myCardsErr  error

	createdCard models.Card
	createErr   error

	updatedCard models.Card
	updateErr   error

	deleteCardIDs []string
	deleteCardErr error

	likedCard   models.Card
	likeErr     error
	likeCardIDs []string

	usersList  []models.User
	usersErr   error
	usersCalls int

	userByID map[string]models.User
	userErr  error

	toggledUser models.User
	toggleErr   error

	deleteUserIDs []string
	deleteUserErr error
}

func (f *fakeClient) SetToken(token string) {
	f.token = token
	f.setTokens = append(f.setTokens, token)
}

func (f *fakeClient) ClearToken() {
	f.token = ""
	f.cleared++
}

func (f *fakeClient) Signup(_ context.Context, req models.SignupRequest) (models.User, error) {
	f.signupReq = req
	return models.User{ID: "new"}, f.signupErr
}

func (f *fakeClient) Login(_ context.Context, email, password string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeClient) Cards(context.Context) ([]models.Card, error) {
	return f.cardsList, f.cardsErr
}

func (f *fakeClient) Card(_ context.Context, id string) (models.Card, error) {
	c, ok := f.cardByID[id]
	if !ok {
		return models.Card{}, fmt.Errorf("no such card %s", id)
	}
	return c, nil
}

func (f *fakeClient) MyCards(context.Context) ([]models.Card, error) {
	return f.myCardsList, f.myCardsErr
}

func (f *fakeClient) CreateCard(_ context.Context, in models.CardInput) (models.Card, error) {
	return f.createdCard, f.createErr
}

func (f *fakeClient) UpdateCard(_ context.Context, id string, in models.CardInput) (models.Card, error) {
	return f.updatedCard, f.updateErr
}

func (f *fakeClient) DeleteCard(_ context.Context, id string) error {
	if f.deleteCardErr != nil {
		return f.deleteCardErr
	}
	f.deleteCardIDs = append(f.deleteCardIDs, id)
	return nil
}

func (f *fakeClient) ToggleLike(_ context.Context, id string) (models.Card, error) {
	f.likeCardIDs = append(f.likeCardIDs, id)
	return f.likedCard, f.likeErr
}

func (f *fakeClient) Users(context.Context) ([]models.User, error) {
	f.usersCalls++
	return f.usersList, f.usersErr
}

func (f *fakeClient) User(_ context.Context, id string) (models.User, error) {
	if f.userErr != nil {
		return models.User{}, f.userErr
	}
	u, ok := f.userByID[id]
	if !ok {
		return models.User{}, fmt.Errorf("no such user %s", id)
	}
	return u, nil
}

func (f *fakeClient) ToggleBusiness(_ context.Context, id string) (models.User, error) {
	return f.toggledUser, f.toggleErr
}

func (f *fakeClient) DeleteUser(_ context.Context, id string) error {
	if f.deleteUserErr != nil {
		return f.deleteUserErr
	}
	f.deleteUserIDs = append(f.deleteUserIDs, id)
	return nil
}

// ---- harness ----

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

func newTestApp(t *testing.T) (*App, *fakeClient) {
	t.Helper()
	db := setupDB(t)
	f := &fakeClient{}
	return &App{
		config:  &config.Config{PageSize: 8},
		log:     nopLogger{},
		api:     f,
		session: session.NewStore(db, f, f),
		cards:   cards.NewStore(),
		db:      db,
		page:    1,
		reader:  bufio.NewReader(strings.NewReader("")),
		now:     time.Now,
	}, f
}

// captureOutput redirects user-facing output into a slice for the duration
// of the test.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	lines := &[]string{}
	printlnFn = func(args ...any) (int, error) {
		*lines = append(*lines, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return lines
}

func outputContains(lines *[]string, substr string) bool {
	for _, l := range *lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// scriptInput replaces the interactive prompts with canned answers, in
// order. The password prompt always yields "secret".
func scriptInput(t *testing.T, answers ...string) {
	t.Helper()
	origText, origPass := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		v := answers[i]
		i++
		return v, nil
	}
	getPassword = func(io.Writer) ([]byte, error) {
		return []byte("secret"), nil
	}
	t.Cleanup(func() {
		getSimpleText, getPassword = origText, origPass
	})
}

func testToken(t *testing.T, business, admin bool) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, session.Claims{
		ID:         "u1",
		Name:       "Dana Levi",
		Email:      "dana@example.com",
		IsBusiness: business,
		IsAdmin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// signIn authenticates the app as user u1 with the given roles.
func signIn(t *testing.T, a *App, f *fakeClient, business, admin bool) {
	t.Helper()
	f.loginToken = testToken(t, business, admin)
	scriptInput(t, "dana@example.com")
	require.NoError(t, a.Login(context.Background()))
}

// ---- tests for App-level wiring ----

func TestGate_ExpiredSessionIsLoggedOutMidRun(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, false, false)
	require.True(t, a.isLoggedIn())

	// jump past the credential's expiry
	a.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	require.NoError(t, a.Favorites(context.Background()))

	require.False(t, a.isLoggedIn())
	require.True(t, outputContains(out, "Your session has expired"))
	require.True(t, outputContains(out, "Please sign in to access this page"))
	require.GreaterOrEqual(t, f.cleared, 1)
}

func TestStatus_ReflectsRoles(t *testing.T) {
	a, f := newTestApp(t)
	captureOutput(t)

	require.Equal(t, "", a.status())

	signIn(t, a, f, true, false)
	require.Equal(t, "(Dana Levi business)", a.status())
}
