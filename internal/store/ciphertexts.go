package store

import (
	"database/sql"
	"fmt"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// PutCipher persists the encrypted payload for a handle. Handles are
// content-addressed, so replacing an existing row writes identical bytes.
func (q *Queries) PutCipher(handle types.Handle, data []byte) error {
	_, err := q.db.Exec(
		"INSERT OR REPLACE INTO ciphertexts (handle, data) VALUES (?, ?)",
		handle.Hex(), data,
	)
	if err != nil {
		return fmt.Errorf("storing ciphertext %s: %w", handle.Hex(), err)
	}
	return nil
}

// GetCipher loads the encrypted payload for a handle.
// Returns ErrNotFound for handles never committed.
func (q *Queries) GetCipher(handle types.Handle) ([]byte, error) {
	var data []byte
	err := q.db.QueryRow(
		"SELECT data FROM ciphertexts WHERE handle = ?", handle.Hex(),
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading ciphertext %s: %w", handle.Hex(), err)
	}
	return data, nil
}
