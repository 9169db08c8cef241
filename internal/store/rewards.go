package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// InsertReward persists a new reward row. The caller assigns the id from
// the reward_id counter beforehand. The (habit, type, threshold) uniqueness
// constraint is enforced by the schema.
func (q *Queries) InsertReward(r *types.Reward) error {
	var claimedAt any
	if r.Claimed {
		claimedAt = r.ClaimedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := q.db.Exec(
		`INSERT INTO rewards (reward_id, habit_id, reward_type, threshold, amount, claimed, claimed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.HabitID, r.RewardType, r.Threshold, r.RewardAmount.Hex(), boolInt(r.Claimed), claimedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting reward %d: %w", r.ID, err)
	}
	return nil
}

// GetReward retrieves the reward for a (habit, type, threshold) triple.
// Returns ErrNotFound if no claim was ever recorded for it.
func (q *Queries) GetReward(habitID uint64, rt types.RewardType, threshold uint32) (*types.Reward, error) {
	row := q.db.QueryRow(
		`SELECT reward_id, habit_id, reward_type, threshold, amount, claimed, claimed_at
		 FROM rewards WHERE habit_id = ? AND reward_type = ? AND threshold = ?`,
		habitID, rt, threshold)
	return hydrateReward(row.Scan)
}

// ListOwnerRewards returns every reward on the owner's habits, in id order.
func (q *Queries) ListOwnerRewards(owner types.Account) ([]types.Reward, error) {
	rows, err := q.db.Query(
		`SELECT r.reward_id, r.habit_id, r.reward_type, r.threshold, r.amount, r.claimed, r.claimed_at
		 FROM rewards r JOIN habits h ON h.habit_id = r.habit_id
		 WHERE h.owner = ? ORDER BY r.reward_id`, string(owner))
	if err != nil {
		return nil, fmt.Errorf("listing rewards for %s: %w", owner, err)
	}
	defer rows.Close()

	rewards := []types.Reward{}
	for rows.Next() {
		r, err := hydrateReward(rows.Scan)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, *r)
	}
	return rewards, rows.Err()
}

// hydrateReward scans a reward row via the given scan function.
func hydrateReward(scan func(dest ...any) error) (*types.Reward, error) {
	var (
		r          types.Reward
		rewardType uint8
		amount     string
		claimed    int
		claimedAt  sql.NullString
	)
	err := scan(&r.ID, &r.HabitID, &rewardType, &r.Threshold, &amount, &claimed, &claimedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning reward: %w", err)
	}

	r.RewardType = types.RewardType(rewardType)
	r.Claimed = claimed != 0
	if r.RewardAmount, err = types.ParseHandle(amount); err != nil {
		return nil, fmt.Errorf("decoding amount handle: %w", err)
	}
	if claimedAt.Valid {
		if r.ClaimedAt, err = time.Parse(time.RFC3339Nano, claimedAt.String); err != nil {
			return nil, fmt.Errorf("parsing claimed_at: %w", err)
		}
	}
	return &r, nil
}
