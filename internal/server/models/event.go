package models

import (
	"time"

	"github.com/google/uuid"
)

// EventKind enumerates the side effects recorded by committed calls.
type EventKind string

const (
	// EventTransfer is a native-asset movement (deposit, withdraw, external transfer).
	EventTransfer EventKind = "transfer"
	// EventMemo carries the raw memo bytes supplied with a transfer.
	EventMemo EventKind = "memo"
	// EventRecovery records the reassignment of a lost account to its new owner.
	EventRecovery EventKind = "recovery"
)

// Event is a record emitted by a committed call. Rejected calls emit none.
type Event struct {
	ID        uuid.UUID
	CallID    uuid.UUID
	Height    uint64
	Kind      EventKind
	Amount    uint64
	Sender    string
	Recipient string
	Memo      []byte
	CreatedAt time.Time
}
