package models

// LockRecord marks an account as lost. While Locked is set the account cannot
// initiate ledger mutations. UnlockHeight is the last height at which a dissent
// is accepted; from that height on the recovery to NewOwner may be executed.
type LockRecord struct {
	Account      string
	Locked       bool
	UnlockHeight uint64
	NewOwner     string
	LockedBy     string
	LockedAt     uint64
}

// CooldownRecord holds the height until which Member may not flag another account.
type CooldownRecord struct {
	Member        string
	CoolDownUntil uint64
}
