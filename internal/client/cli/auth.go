package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/bcardapp/bcard/internal/client/api"
	"github.com/bcardapp/bcard/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the signup fields and creates an account on the
// service. The session is not changed; the user signs in afterwards.
func (a *App) Register(ctx context.Context) error {
	var req models.SignupRequest
	var err error

	if req.Name.First, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
		return err
	}
	if req.Name.Middle, err = getSimpleText(a.reader, "Middle name (optional)", os.Stdout); err != nil {
		return err
	}
	if req.Name.Last, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone", os.Stdout); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)
	req.Password = string(password)

	biz, err := getSimpleText(a.reader, "Business account? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	req.IsBusiness = biz == "y" || biz == "yes"

	if req.Address, err = a.promptAddress(models.Address{}); err != nil {
		return err
	}

	imageURL, err := getSimpleText(a.reader, "Profile image URL (optional)", os.Stdout)
	if err != nil {
		return err
	}
	if imageURL == "" {
		imageURL = models.DefaultProfileImageURL
	}
	req.Image = models.Image{URL: imageURL, Alt: "User image"}

	if _, err := a.api.Signup(ctx, req); err != nil {
		a.reportError(ctx, err, "Registration failed")
		return err
	}

	a.notify("Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and authenticates through the session
// store; on success the credential is persisted and installed as the
// default for outgoing requests.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		if api.IsKind(err, api.KindUnauthorized) || api.IsKind(err, api.KindBadRequest) {
			a.notify(api.UserMessage(err, "Invalid email or password"))
		} else {
			a.reportError(ctx, err, "Sign-in failed")
		}
		return err
	}

	a.page = 1
	a.notify("Signed in as", a.session.Current().Identity.Name)
	return nil
}

// Logout clears the persisted credential and resets the session. It never
// requires the network.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.notify("Not signed in.")
		return nil
	}
	err := a.session.Logout(ctx)
	if err != nil {
		a.log.Warn(ctx, "clearing persisted credential failed", "error", err)
	}
	a.notify("Signed out.")
	return err
}

// WhoAmI prints the current session's identity and roles.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Current()
	if !s.Authenticated {
		a.notify("Anonymous. Use 'login' to sign in.")
		return nil
	}
	roles := "user"
	if s.IsAdmin {
		roles = "admin"
	} else if s.IsBusiness {
		roles = "business"
	}
	a.notify(s.Identity.Name, "<"+s.Identity.Email+">", "—", roles)
	return nil
}

// promptAddress collects address fields, showing current values as defaults
// when editing (enter keeps the shown value).
func (a *App) promptAddress(current models.Address) (models.Address, error) {
	addr := current

	country, err := getSimpleText(a.reader, withDefault("Country", current.Country), os.Stdout)
	if err != nil {
		return addr, err
	}
	if country != "" {
		addr.Country = country
	}

	city, err := getSimpleText(a.reader, withDefault("City", current.City), os.Stdout)
	if err != nil {
		return addr, err
	}
	if city != "" {
		addr.City = city
	}

	street, err := getSimpleText(a.reader, withDefault("Street", current.Street), os.Stdout)
	if err != nil {
		return addr, err
	}
	if street != "" {
		addr.Street = street
	}

	house, err := getSimpleText(a.reader, "House number", os.Stdout)
	if err != nil {
		return addr, err
	}
	if n, err := strconv.Atoi(house); err == nil {
		addr.HouseNumber = n
	}

	zip, err := getSimpleText(a.reader, "Zip (optional)", os.Stdout)
	if err != nil {
		return addr, err
	}
	if n, err := strconv.Atoi(zip); err == nil {
		addr.Zip = n
	}

	return addr, nil
}

func withDefault(prompt, current string) string {
	if current == "" {
		return prompt
	}
	return prompt + " [" + current + "]"
}
