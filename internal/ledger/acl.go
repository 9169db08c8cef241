package ledger

import (
	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// ShareHandle widens access to a handle: an account already holding a
// decrypt grant extends one to another account. Grants stay append-only;
// there is no revoke.
func (l *Ledger) ShareHandle(caller types.Account, handle types.Handle, grantee types.Account) error {
	return l.store.Transact(func(q *store.Queries) error {
		ok, err := q.HasGrant(handle, caller)
		if err != nil {
			return err
		}
		if !ok {
			return types.ErrNotAuthorized
		}
		return l.grant(q, handle, grantee)
	})
}
