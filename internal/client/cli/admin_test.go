package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bcardapp/bcard/internal/client/models"
)

func TestUsers_RequiresAdmin(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, true, false) // business, not admin

	require.NoError(t, a.Users(context.Background()))

	require.Zero(t, f.usersCalls)
	require.True(t, outputContains(out, "This page is available only for administrators"))
}

func TestUsers_ListsAccounts(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, false, true)

	f.usersList = []models.User{
		{ID: "u1", Name: models.Name{First: "Dana", Last: "Levi"}, Email: "dana@example.com", IsAdmin: true},
		{ID: "u2", Name: models.Name{First: "Noa", Last: "Bar"}, Email: "noa@example.com", IsBusiness: true},
	}

	require.NoError(t, a.Users(context.Background()))

	require.Equal(t, 1, f.usersCalls)
	require.True(t, outputContains(out, "Dana Levi"))
	require.True(t, outputContains(out, "2 users"))
}

func TestSetBusiness_TogglesFlag(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, false, true)

	f.toggledUser = models.User{ID: "u2", Name: models.Name{First: "Noa", Last: "Bar"}, IsBusiness: true}

	require.NoError(t, a.SetBusiness(context.Background(), "u2"))
	require.True(t, outputContains(out, "Noa Bar is now a business account."))
}

func TestRemoveUser_SelfDeleteRefused(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, false, true) // signed in as u1

	require.NoError(t, a.RemoveUser(context.Background(), "u1"))

	require.Empty(t, f.deleteUserIDs)
	require.True(t, outputContains(out, "You cannot delete your own account."))
}

func TestRemoveUser_OtherAdminRefused(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, false, true)

	f.userByID = map[string]models.User{
		"u2": {ID: "u2", Name: models.Name{First: "Noa", Last: "Bar"}, IsAdmin: true},
	}

	require.NoError(t, a.RemoveUser(context.Background(), "u2"))

	require.Empty(t, f.deleteUserIDs)
	require.True(t, outputContains(out, "You cannot delete another administrator."))
}

func TestRemoveUser_ConfirmedDeletion(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, false, true)

	f.userByID = map[string]models.User{
		"u2": {ID: "u2", Name: models.Name{First: "Noa", Last: "Bar"}},
	}

	scriptInput(t, "y")
	require.NoError(t, a.RemoveUser(context.Background(), "u2"))

	require.Equal(t, []string{"u2"}, f.deleteUserIDs)
	require.True(t, outputContains(out, "User deleted."))
}

func TestRemoveUser_RequiresAdmin(t *testing.T) {
	a, f := newTestApp(t)
	out := captureOutput(t)
	signIn(t, a, f, false, false)

	require.NoError(t, a.RemoveUser(context.Background(), "u2"))

	require.Empty(t, f.deleteUserIDs)
	require.True(t, outputContains(out, "This page is available only for administrators"))
}
