// Package cli provides the interactive wallet command-line client.
//
// It wires configuration, the local journal, API services, and an interactive
// REPL. Typical flow: restore the saved session, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - login / logout (access tokens minted locally from the shared secret)
//   - ledger calls: deposit, withdraw, transfer, send
//   - recovery calls: lost, dissent, recover
//   - queries: balance, member, unlock-time, cooldown, unlocked, custody, height
//   - events of a committed call, operator block mining, receipt history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
