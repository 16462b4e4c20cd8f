package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophwallet/internal/client/client"
	"github.com/dmitrijs2005/gophwallet/internal/client/services"
)

const defaultHistory = 20

// Call runs a table command and prints its receipt.
func (a *App) Call(ctx context.Context, c command, args []string) error {
	req, err := c.request(args)
	if err != nil {
		return err
	}

	r, err := a.walletService.Execute(ctx, c.method, req)
	if err != nil {
		if services.IsUnauthorized(err) {
			return fmt.Errorf("%w (try login again)", err)
		}
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}
	fmt.Fprintln(a.out, r.String())
	return nil
}

// Events prints the events recorded by a committed call.
func (a *App) Events(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: events <call_id>")
	}
	events, err := a.walletService.CallEvents(ctx, args[0])
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(a.out, "no events")
	}
	for _, e := range events {
		fmt.Fprintln(a.out, e.String())
	}
	return nil
}

// Mine asks the server to produce blocks. Requires an operator session.
func (a *App) Mine(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mine <count>")
	}
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || n == 0 {
		return fmt.Errorf("usage: mine <count>")
	}
	if a.session == nil || !a.session.Operator {
		return fmt.Errorf("operator session required")
	}

	h, err := a.walletService.MineBlocks(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "height %d\n", h)
	return nil
}

// History prints the newest journaled receipts, `history [n]`.
func (a *App) History(ctx context.Context, args []string) error {
	limit := defaultHistory
	if len(args) > 1 {
		return fmt.Errorf("usage: history [n]")
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("usage: history [n]")
		}
		limit = n
	}

	list, err := a.walletService.History(ctx, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "journal is empty")
	}
	for _, r := range list {
		fmt.Fprintln(a.out, r.String())
	}
	return nil
}
