package types

// DayMillis is the duration of one day bucket in Unix milliseconds.
// Completion dates must be exact multiples of it.
const DayMillis int64 = 86_400_000

// DayAligned reports whether date falls exactly on a day boundary.
func DayAligned(date int64) bool {
	return date >= 0 && date%DayMillis == 0
}

// AlignDay rounds a Unix-millisecond timestamp down to its day bucket.
func AlignDay(ts int64) int64 {
	return ts / DayMillis * DayMillis
}

// CompletionRecord is one day's completion entry for a habit. Records are
// keyed by (HabitID, Date); a second write to the same date overwrites the
// ciphertext without duplicating the key. The status ciphertext holds either
// a 0/1 indicator or a 0-100 quality value; nonzero means completed.
type CompletionRecord struct {
	HabitID          uint64 `json:"habit_id"`
	Date             int64  `json:"date"`
	CompletionStatus Handle `json:"completion_status"`
	Exists           bool   `json:"exists"`
}
