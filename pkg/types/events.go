package types

import "time"

// Event kinds emitted by the ledger. Events carry plaintext identifying
// fields only; protected values never appear in an event.
const (
	EventHabitCreated       = "habit_created"
	EventHabitUpdated       = "habit_updated"
	EventHabitDeleted       = "habit_deleted"
	EventCompletionRecorded = "completion_recorded"
	EventRewardClaimed      = "reward_claimed"
)

// Event is a plaintext notification of a committed state transition.
type Event struct {
	Kind     string    `json:"kind"`
	HabitID  uint64    `json:"habit_id"`
	Account  Account   `json:"account"`
	Name     string    `json:"name,omitempty"`      // habit name, creation only
	Date     int64     `json:"date,omitempty"`      // completion date bucket
	RewardID uint64    `json:"reward_id,omitempty"` // reward claims only
	At       time.Time `json:"at"`
}
