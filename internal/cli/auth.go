package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studentverse/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Choose username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.sessions.Register(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registration successful! You can now login as %s.\n", u.UserName)
	return nil
}

// Login prompts for credentials and, on success, starts a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.sessions.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.session = &s
	a.log.Info(ctx, "session started", "user_id", s.UserID)
	fmt.Fprintf(a.out, "Login successful! Welcome, %s.\n", s.UserName)
	return nil
}

// Logout ends the current session, if any.
func (a *App) Logout(ctx context.Context) error {
	if a.session == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	a.log.Info(ctx, "session ended", "user_id", a.session.UserID)
	a.session = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
