package models

import "time"

// Snapshot is a point-in-time copy of the whole wallet state.
type Snapshot struct {
	Height    uint64           `json:"height"`
	Contract  string           `json:"contract"`
	Members   []Member         `json:"members"`
	Locks     []LockRecord     `json:"locks"`
	Cooldowns []CooldownRecord `json:"cooldowns"`
	Custody   []CustodyBalance `json:"custody"`
	TakenAt   time.Time        `json:"taken_at"`
}
