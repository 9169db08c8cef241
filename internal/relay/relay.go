// Package relay implements the off-ledger decryption path: an account that
// holds an ACL grant on a ciphertext handle obtains the plaintext here.
// The relay never computes; it only checks grants and reveals.
// See docs/ARCHITECTURE.md § Decryption Relay.
package relay

import (
	"fmt"

	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// Relay resolves ciphertext handles to plaintext for authorized accounts.
type Relay struct {
	store  *store.Store
	engine *fhe.Engine
}

// New creates a relay over the ledger's store and engine.
func New(s *store.Store, e *fhe.Engine) *Relay {
	return &Relay{store: s, engine: e}
}

// UserDecrypt returns the plaintext behind a handle for an account holding
// a decrypt grant on it. Handles never committed, or committed without a
// grant for the account, fail with ErrNotAuthorized: a simulated handle
// that no commit authorized is indistinguishable from a foreign one.
func (r *Relay) UserDecrypt(account types.Account, handle types.Handle) (uint64, error) {
	q, err := r.store.Queries()
	if err != nil {
		return 0, err
	}

	ok, err := q.HasGrant(handle, account)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no grant on %s for %s: %w", handle.Hex(), account, types.ErrNotAuthorized)
	}

	data, err := q.GetCipher(handle)
	if err != nil {
		return 0, fmt.Errorf("granted handle %s has no ciphertext: %w", handle.Hex(), err)
	}
	return r.engine.Reveal(fhe.Ciphertext{Handle: handle, Data: data})
}
