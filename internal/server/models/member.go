// Package models defines server-side data models persisted by the wallet.
package models

// Member is an account enrolled in the wallet together with its ledger balance,
// expressed in the smallest unit of the custodied native asset.
type Member struct {
	Account string
	Balance uint64
}

// CustodyBalance is the amount of native asset an external account holds.
// The contract's own custody is the row of the contract account.
type CustodyBalance struct {
	Account string
	Balance uint64
}
