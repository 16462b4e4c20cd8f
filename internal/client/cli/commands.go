package cli

import (
	"fmt"
	"strings"
)

// command maps a REPL verb onto a wallet method. Positional arguments fill
// params in order; a trailing "memo" param takes the rest of the line.
type command struct {
	name     string
	method   string
	params   []string
	optional int
	signed   bool
}

var commands = []command{
	{name: "deposit", method: "Deposit", params: []string{"amount", "recipient"}, signed: true},
	{name: "withdraw", method: "Withdraw", params: []string{"amount"}, signed: true},
	{name: "transfer", method: "InternalTransfer", params: []string{"amount", "sender", "recipient", "memo"}, optional: 1, signed: true},
	{name: "send", method: "ExternalTransfer", params: []string{"amount", "sender", "recipient", "memo"}, optional: 1, signed: true},
	{name: "lost", method: "MarkAsLost", params: []string{"lost_account", "new_owner"}, signed: true},
	{name: "dissent", method: "Dissent", params: []string{"lost_account"}, signed: true},
	{name: "recover", method: "ExecuteRecovery", params: []string{"lost_account"}, signed: true},

	{name: "balance", method: "GetBalance", params: []string{"account"}},
	{name: "member", method: "GetMember", params: []string{"account"}},
	{name: "unlock-time", method: "GetUnlockTime", params: []string{"account"}},
	{name: "cooldown", method: "GetLockingCoolDown", params: []string{"account"}},
	{name: "unlocked", method: "IsAccountUnlocked", params: []string{"account"}},
	{name: "custody", method: "GetCustodyBalance", params: []string{"account"}},
	{name: "height", method: "GetHeight"},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (c command) usage() string {
	var b strings.Builder
	b.WriteString(c.name)
	for i, p := range c.params {
		if i >= len(c.params)-c.optional {
			fmt.Fprintf(&b, " [%s]", p)
		} else {
			fmt.Fprintf(&b, " <%s>", p)
		}
	}
	return b.String()
}

// request builds the call arguments. Amounts stay decimal strings so large
// values survive the trip.
func (c command) request(args []string) (map[string]any, error) {
	required := len(c.params) - c.optional
	last := len(c.params) - 1
	takesRest := last >= 0 && c.params[last] == "memo"

	if len(args) < required || (!takesRest && len(args) > len(c.params)) {
		return nil, fmt.Errorf("usage: %s", c.usage())
	}

	req := make(map[string]any, len(c.params))
	for i, p := range c.params {
		if i >= len(args) {
			break
		}
		if takesRest && i == last {
			req[p] = strings.Join(args[i:], " ")
			break
		}
		req[p] = args[i]
	}
	return req, nil
}

func helpText(loggedIn bool) string {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		if c.signed && !loggedIn {
			continue
		}
		names = append(names, c.name)
	}
	if loggedIn {
		names = append(names, "events", "history", "mine", "whoami", "logout")
	} else {
		names = append(names, "events", "history", "login")
	}
	names = append(names, "exit")
	return "Available commands: " + strings.Join(names, ", ")
}
