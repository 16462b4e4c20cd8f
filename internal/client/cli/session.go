package cli

import (
	"context"
	"fmt"
	"os"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

// Login signs a token for `login <account> [operator]` with the secret read
// from the terminal. The secret is wiped before returning.
func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "operator") {
		return fmt.Errorf("usage: login <account> [operator]")
	}
	operator := len(args) == 2

	secret, err := getSecret(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(secret)

	s, err := a.authService.Login(ctx, args[0], operator, secret)
	if err != nil {
		return err
	}
	a.session = s
	fmt.Fprintf(a.out, "Signed in as %s\n", s.Account)
	return nil
}

// Logout forgets the saved session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if a.session == nil {
		fmt.Fprintln(a.out, "not signed in")
		return nil
	}
	role := "member"
	if a.session.Operator {
		role = "operator"
	}
	fmt.Fprintf(a.out, "%s (%s)\n", a.session.Account, role)
	return nil
}
