package types

import "time"

// Account identifies a calling party on the ledger.
type Account string

// HabitType classifies the cadence of a habit.
type HabitType uint8

const (
	HabitDaily HabitType = iota
	HabitWeekly
	HabitCustom
)

// habitTypeNames maps habit types to their display names.
var habitTypeNames = map[HabitType]string{
	HabitDaily:  "daily",
	HabitWeekly: "weekly",
	HabitCustom: "custom",
}

// String returns the display name of the habit type.
func (t HabitType) String() string {
	if name, ok := habitTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseHabitType converts a display name back to a HabitType.
// Returns ErrInvalidInput for unrecognized names.
func ParseHabitType(s string) (HabitType, error) {
	for t, name := range habitTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, ErrInvalidInput
}

// Habit is a tracked habit. Name, description and target are plaintext; the
// quality standard a completion must meet is a ciphertext handle and never
// leaves ciphertext space on the ledger.
type Habit struct {
	ID                 uint64    `json:"id"`
	Owner              Account   `json:"owner"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	TargetDays         uint32    `json:"target_days"`
	HabitType          HabitType `json:"habit_type"`
	CompletionStandard Handle    `json:"completion_standard"`
	CreatedAt          time.Time `json:"created_at"`
	IsActive           bool      `json:"is_active"`
}

// Validate checks the plaintext habit fields. The quality standard is
// validated by the handle layer, not here.
func (h *Habit) Validate() error {
	if h.Name == "" {
		return ErrInvalidInput
	}
	if h.TargetDays == 0 {
		return ErrInvalidInput
	}
	if _, ok := habitTypeNames[h.HabitType]; !ok {
		return ErrInvalidInput
	}
	return nil
}
