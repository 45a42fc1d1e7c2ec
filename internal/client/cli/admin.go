package cli

import (
	"context"
	"os"

	"github.com/bcardapp/bcard/internal/client/guard"
)

// Users lists every account for the admin panel. The list is fetched fresh
// on each call and never cached.
func (a *App) Users(ctx context.Context) error {
	if !a.gate(ctx, guard.Admin) {
		return nil
	}
	users, err := a.api.Users(ctx)
	if err != nil {
		a.reportError(ctx, err, "Could not load users")
		return err
	}
	a.renderUsers(users)
	return nil
}

// SetBusiness flips the business flag on an account.
func (a *App) SetBusiness(ctx context.Context, id string) error {
	if !a.gate(ctx, guard.Admin) {
		return nil
	}
	u, err := a.api.ToggleBusiness(ctx, id)
	if err != nil {
		a.reportError(ctx, err, "Could not change the business status")
		return err
	}
	if u.IsBusiness {
		a.notify(u.Name.Full(), "is now a business account.")
	} else {
		a.notify(u.Name.Full(), "is no longer a business account.")
	}
	return nil
}

// RemoveUser deletes an account. Admins may not delete their own account or
// another administrator; both are refused before any request is made.
func (a *App) RemoveUser(ctx context.Context, id string) error {
	if !a.gate(ctx, guard.Admin) {
		return nil
	}
	if id == a.session.Current().Identity.ID {
		a.notify("You cannot delete your own account.")
		return nil
	}

	target, err := a.api.User(ctx, id)
	if err != nil {
		a.reportError(ctx, err, "User not found")
		return err
	}
	if target.IsAdmin {
		a.notify("You cannot delete another administrator.")
		return nil
	}

	confirm, err := getSimpleText(a.reader, "Delete user '"+target.Name.Full()+"'? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "yes" {
		a.notify("Cancelled.")
		return nil
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		a.reportError(ctx, err, "Could not delete the user")
		return err
	}
	a.notify("User deleted.")
	return nil
}
