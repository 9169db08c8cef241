package store

import (
	"fmt"
	"time"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// InsertGrant records that an account may decrypt a handle. Grants are
// append-only and idempotent: re-granting an existing (handle, account)
// pair is a no-op.
func (q *Queries) InsertGrant(g types.Grant) error {
	_, err := q.db.Exec(
		`INSERT OR IGNORE INTO grants (grant_id, handle, account, created_at)
		 VALUES (?, ?, ?, ?)`,
		g.GrantID, g.Handle.Hex(), string(g.Account), g.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting grant for %s: %w", g.Account, err)
	}
	return nil
}

// HasGrant reports whether the account holds a decrypt grant on the handle.
func (q *Queries) HasGrant(handle types.Handle, account types.Account) (bool, error) {
	var n int
	err := q.db.QueryRow(
		"SELECT COUNT(*) FROM grants WHERE handle = ? AND account = ?",
		handle.Hex(), string(account),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking grant: %w", err)
	}
	return n > 0, nil
}
