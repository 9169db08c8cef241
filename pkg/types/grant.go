package types

import "time"

// Grant marks that an account may obtain plaintext for a ciphertext handle
// through the decryption relay. Grants are keyed by (Handle, Account),
// append-only, and never revoked.
type Grant struct {
	GrantID   string    `json:"grant_id"` // UUID v7
	Handle    Handle    `json:"handle"`
	Account   Account   `json:"account"`
	CreatedAt time.Time `json:"created_at"`
}
