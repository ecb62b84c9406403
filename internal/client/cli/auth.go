package cli

import (
	"context"
	"errors"
	"fmt"
)

// getSimpleText, getPassword, getMultiline and confirm are indirections
// used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

// Register prompts for username, email and password (twice) and creates the
// account. It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirmation, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}

	user, err := a.api.Register(ctx, username, email, password, confirmation)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s. You can now log in.\n", user.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.api.LoggedIn() {
		return fmt.Errorf("already logged in as %s", a.api.Username())
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", a.api.Username())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Profile changes username and email; an empty answer keeps the current
// value.
func (a *App) Profile(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	page, err := a.api.UserPage(ctx, "")
	if err != nil {
		return err
	}
	current := page.User

	username, err := getSimpleText(a.reader, fmt.Sprintf("Username [%s]", current.Username), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", current.Email), a.out)
	if err != nil {
		return err
	}
	if username == "" {
		username = current.Username
	}
	if email == "" {
		email = current.Email
	}

	user, err := a.api.UpdateProfile(ctx, username, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", user.Username, user.Email)
	return nil
}

// Me prints the caller's own page.
func (a *App) Me(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	page, err := a.api.UserPage(ctx, "")
	if err != nil {
		return err
	}
	printUserPage(a.out, page)
	return nil
}

// User prints someone's public page.
func (a *App) User(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: user <name>")
	}
	page, err := a.api.UserPage(ctx, args[0])
	if err != nil {
		return err
	}
	printUserPage(a.out, page)
	return nil
}
