package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// InsertHabit persists a new habit row. The caller assigns the id from the
// habit_id counter beforehand.
func (q *Queries) InsertHabit(h *types.Habit) error {
	_, err := q.db.Exec(
		`INSERT INTO habits (habit_id, owner, name, description, target_days, habit_type,
		 completion_standard, created_at, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, string(h.Owner), h.Name, h.Description, h.TargetDays, h.HabitType,
		h.CompletionStandard.Hex(), h.CreatedAt.UTC().Format(time.RFC3339Nano), boolInt(h.IsActive),
	)
	if err != nil {
		return fmt.Errorf("inserting habit %d: %w", h.ID, err)
	}
	return nil
}

// GetHabit retrieves a habit by id. Returns ErrNotFound if absent.
func (q *Queries) GetHabit(id uint64) (*types.Habit, error) {
	row := q.db.QueryRow(
		`SELECT habit_id, owner, name, description, target_days, habit_type,
		 completion_standard, created_at, is_active FROM habits WHERE habit_id = ?`, id)
	return hydrateHabit(row)
}

// UpdateHabit rewrites the mutable habit fields.
func (q *Queries) UpdateHabit(h *types.Habit) error {
	res, err := q.db.Exec(
		`UPDATE habits SET name = ?, description = ?, target_days = ?,
		 completion_standard = ?, is_active = ? WHERE habit_id = ?`,
		h.Name, h.Description, h.TargetDays, h.CompletionStandard.Hex(), boolInt(h.IsActive), h.ID,
	)
	if err != nil {
		return fmt.Errorf("updating habit %d: %w", h.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ListOwnerHabitIDs returns every habit id ever created by the owner, in
// creation order, regardless of active state.
func (q *Queries) ListOwnerHabitIDs(owner types.Account) ([]uint64, error) {
	rows, err := q.db.Query(
		"SELECT habit_id FROM habits WHERE owner = ? ORDER BY habit_id", string(owner))
	if err != nil {
		return nil, fmt.Errorf("listing habits for %s: %w", owner, err)
	}
	defer rows.Close()

	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// hydrateHabit scans a habit row into a *types.Habit.
func hydrateHabit(row *sql.Row) (*types.Habit, error) {
	var (
		h         types.Habit
		owner     string
		habitType uint8
		standard  string
		createdAt string
		active    int
	)
	err := row.Scan(&h.ID, &owner, &h.Name, &h.Description, &h.TargetDays,
		&habitType, &standard, &createdAt, &active)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning habit: %w", err)
	}

	h.Owner = types.Account(owner)
	h.HabitType = types.HabitType(habitType)
	h.IsActive = active != 0
	if h.CompletionStandard, err = types.ParseHandle(standard); err != nil {
		return nil, fmt.Errorf("decoding standard handle: %w", err)
	}
	if h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &h, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
