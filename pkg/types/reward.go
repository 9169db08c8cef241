package types

import "time"

// RewardType distinguishes the two reward families.
type RewardType uint8

const (
	// RewardMilestone is keyed by a completion-percentage threshold.
	RewardMilestone RewardType = iota
	// RewardConsecutive is keyed by a minimum streak length in days.
	RewardConsecutive
)

// String returns the display name of the reward type.
func (t RewardType) String() string {
	switch t {
	case RewardMilestone:
		return "milestone"
	case RewardConsecutive:
		return "consecutive"
	default:
		return "unknown"
	}
}

// ParseRewardType converts a display name back to a RewardType.
// Returns ErrInvalidInput for unrecognized names.
func ParseRewardType(s string) (RewardType, error) {
	switch s {
	case "milestone":
		return RewardMilestone, nil
	case "consecutive":
		return RewardConsecutive, nil
	default:
		return 0, ErrInvalidInput
	}
}

// Reward records a claimed (or claimable) reward for a habit. The threshold
// is plaintext; the amount is a ciphertext handle. At most one claimed
// Reward may exist per (HabitID, RewardType, Threshold) triple.
type Reward struct {
	ID           uint64     `json:"id"`
	HabitID      uint64     `json:"habit_id"`
	RewardType   RewardType `json:"reward_type"`
	Threshold    uint32     `json:"threshold"`
	RewardAmount Handle     `json:"reward_amount"`
	Claimed      bool       `json:"claimed"`
	ClaimedAt    time.Time  `json:"claimed_at"`
}

// Claim transitions the reward to its terminal claimed state.
// Returns ErrAlreadyClaimed if it was claimed before; there is no
// transition back.
func (r *Reward) Claim(at time.Time) error {
	if r.Claimed {
		return ErrAlreadyClaimed
	}
	r.Claimed = true
	r.ClaimedAt = at
	return nil
}
