// Package ledger implements the confidential habit ledger state machine:
// the habit registry, the completion ledger, the ciphertext aggregation
// engine, the reward engine and the decrypt-authorization ACL. The host
// serializes all committing calls; the package itself holds no locks beyond
// the store's.
// See docs/ARCHITECTURE.md § Ledger Core.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// CallMode selects between the two phases of the retrieval protocol.
type CallMode int

const (
	// Commit persists state transitions and ACL grants. The produced
	// handles are listed on the receipt, not returned as values.
	Commit CallMode = iota
	// Simulate re-evaluates against committed state without persisting
	// anything and returns the produced handles. Because evaluation is
	// deterministic, an undisturbed simulate reproduces exactly the
	// handles a preceding commit authorized.
	Simulate
)

// Call identifies the calling account and the phase of an engine call.
type Call struct {
	Caller types.Account
	Mode   CallMode
}

// Receipt acknowledges a committing call. Handles lists the ciphertext
// handles whose decrypt rights were granted to the caller in the same
// transaction.
type Receipt struct {
	TxID    string
	Handles []types.Handle
}

// Ledger is the confidential habit ledger.
type Ledger struct {
	store  *store.Store
	engine *fhe.Engine
	log    *zap.Logger
	sink   Sink
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger attaches a structured logger. Logged fields are plaintext
// identifiers only.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithSink attaches an event sink receiving committed-state notifications.
func WithSink(sink Sink) Option {
	return func(l *Ledger) { l.sink = sink }
}

// New creates a Ledger over an open store and an engine.
func New(s *store.Store, e *fhe.Engine, opts ...Option) *Ledger {
	l := &Ledger{store: s, engine: e, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// activeHabit loads a habit and fails with ErrNotFound when it does not
// exist or has been logically deleted.
func (l *Ledger) activeHabit(q *store.Queries, habitID uint64) (*types.Habit, error) {
	habit, err := q.GetHabit(habitID)
	if err != nil {
		return nil, err
	}
	if !habit.IsActive {
		return nil, types.ErrNotFound
	}
	return habit, nil
}

// ownedHabit loads an active habit and enforces caller ownership.
func (l *Ledger) ownedHabit(q *store.Queries, caller types.Account, habitID uint64) (*types.Habit, error) {
	habit, err := l.activeHabit(q, habitID)
	if err != nil {
		return nil, err
	}
	if habit.Owner != caller {
		return nil, types.ErrNotOwner
	}
	return habit, nil
}

// loadCipher materializes the stored ciphertext behind a handle.
func (l *Ledger) loadCipher(q *store.Queries, h types.Handle) (fhe.Ciphertext, error) {
	data, err := q.GetCipher(h)
	if err != nil {
		return fhe.Ciphertext{}, fmt.Errorf("loading ciphertext for %s: %w", h.Hex(), err)
	}
	return fhe.Ciphertext{Handle: h, Data: data}, nil
}

// authorize persists the given ciphertexts and grants the account decrypt
// rights on each, returning the commit receipt. Runs inside the same
// transaction as the state transition that produced the handles.
func (l *Ledger) authorize(q *store.Queries, account types.Account, cts ...fhe.Ciphertext) (*Receipt, error) {
	txID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating receipt id: %w", err)
	}
	receipt := &Receipt{TxID: txID.String()}

	for _, ct := range cts {
		if err := q.PutCipher(ct.Handle, ct.Data); err != nil {
			return nil, err
		}
		if err := l.grant(q, ct.Handle, account); err != nil {
			return nil, err
		}
		receipt.Handles = append(receipt.Handles, ct.Handle)
	}
	return receipt, nil
}

// grant appends an ACL grant for (handle, account).
func (l *Ledger) grant(q *store.Queries, h types.Handle, account types.Account) error {
	grantID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating grant id: %w", err)
	}
	return q.InsertGrant(types.Grant{
		GrantID:   grantID.String(),
		Handle:    h,
		Account:   account,
		CreatedAt: time.Now().UTC(),
	})
}
