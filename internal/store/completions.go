package store

import (
	"database/sql"
	"fmt"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// UpsertCompletion writes the completion record for (habitID, date). A
// second write to the same date replaces the status ciphertext without
// duplicating the key.
func (q *Queries) UpsertCompletion(habitID uint64, date int64, status types.Handle) error {
	_, err := q.db.Exec(
		`INSERT INTO completions (habit_id, date, status) VALUES (?, ?, ?)
		 ON CONFLICT (habit_id, date) DO UPDATE SET status = excluded.status`,
		habitID, date, status.Hex(),
	)
	if err != nil {
		return fmt.Errorf("upserting completion (%d, %d): %w", habitID, date, err)
	}
	return nil
}

// GetCompletion retrieves the record for (habitID, date).
// Returns ErrNotFound if no record exists for that day bucket.
func (q *Queries) GetCompletion(habitID uint64, date int64) (*types.CompletionRecord, error) {
	var status string
	err := q.db.QueryRow(
		"SELECT status FROM completions WHERE habit_id = ? AND date = ?", habitID, date,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting completion (%d, %d): %w", habitID, date, err)
	}

	handle, err := types.ParseHandle(status)
	if err != nil {
		return nil, fmt.Errorf("decoding status handle: %w", err)
	}
	return &types.CompletionRecord{
		HabitID:          habitID,
		Date:             date,
		CompletionStatus: handle,
		Exists:           true,
	}, nil
}

// ListCompletionDates returns the recorded day buckets for a habit in
// ascending order.
func (q *Queries) ListCompletionDates(habitID uint64) ([]int64, error) {
	rows, err := q.db.Query(
		"SELECT date FROM completions WHERE habit_id = ? ORDER BY date", habitID)
	if err != nil {
		return nil, fmt.Errorf("listing completion dates for %d: %w", habitID, err)
	}
	defer rows.Close()

	dates := []int64{}
	for rows.Next() {
		var d int64
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ListCompletions returns all records for a habit, most recent first. The
// aggregation engine walks them in this order.
func (q *Queries) ListCompletions(habitID uint64) ([]types.CompletionRecord, error) {
	rows, err := q.db.Query(
		"SELECT date, status FROM completions WHERE habit_id = ? ORDER BY date DESC", habitID)
	if err != nil {
		return nil, fmt.Errorf("listing completions for %d: %w", habitID, err)
	}
	defer rows.Close()

	records := []types.CompletionRecord{}
	for rows.Next() {
		var (
			date   int64
			status string
		)
		if err := rows.Scan(&date, &status); err != nil {
			return nil, err
		}
		handle, err := types.ParseHandle(status)
		if err != nil {
			return nil, fmt.Errorf("decoding status handle: %w", err)
		}
		records = append(records, types.CompletionRecord{
			HabitID:          habitID,
			Date:             date,
			CompletionStatus: handle,
			Exists:           true,
		})
	}
	return records, rows.Err()
}
