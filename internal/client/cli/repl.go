package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Call(ctx context.Context, c command, args []string) error
	Events(ctx context.Context, args []string) error
	Mine(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the wallet CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Wallet calls are looked up in
// the command table; calls that need a session are refused until the user
// logs in. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wallet %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn()))

		case "login":
			err = a.Login(ctx, args)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "events":
			err = a.Events(ctx, args)

		case "mine":
			err = a.Mine(ctx, args)

		case "history":
			err = a.History(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			c, ok := lookupCommand(cmd)
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if c.signed && !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = a.Call(ctx, c, args)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
