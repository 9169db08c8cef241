// Package integration provides integration tests exercising the full
// ledger workflow through its public entry points, plus their shared
// helpers.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RachelLancelot/quantumhabit/internal/ledger"
	"github.com/RachelLancelot/quantumhabit/internal/relay"
	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

const (
	userAlice = types.Account("alice")
	userBob   = types.Account("bob")

	// dayZero is an arbitrary aligned day bucket; tests count forward
	// from here.
	dayZero = 19_000 * types.DayMillis
)

// ledgerEnv wires a ledger, its relay and the underlying store over an
// isolated temp directory. Each test gets its own instance.
type ledgerEnv struct {
	t      *testing.T
	store  *store.Store
	engine *fhe.Engine
	ledger *ledger.Ledger
	relay  *relay.Relay
}

func newLedgerEnv(t *testing.T) *ledgerEnv {
	t.Helper()

	s := store.New()
	err := s.Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	secret, err := fhe.GenerateSecret()
	require.NoError(t, err)
	engine, err := fhe.NewEngine(secret)
	require.NoError(t, err)

	return &ledgerEnv{
		t:      t,
		store:  s,
		engine: engine,
		ledger: ledger.New(s, engine),
		relay:  relay.New(s, engine),
	}
}

// input encrypts a client input value bound to the account.
func (e *ledgerEnv) input(account types.Account, w types.Width, value uint64) fhe.InputCiphertext {
	e.t.Helper()
	in, err := e.engine.EncryptInput(account, w, value)
	require.NoError(e.t, err)
	return in
}

// createHabit registers a habit with the given target and encrypted
// quality standard.
func (e *ledgerEnv) createHabit(owner types.Account, name string, targetDays uint32, standard uint64) uint64 {
	e.t.Helper()
	id, err := e.ledger.CreateHabit(owner, ledger.CreateHabitParams{
		Name:       name,
		TargetDays: targetDays,
		HabitType:  types.HabitDaily,
		Standard:   e.input(owner, types.WidthUint8, standard),
	})
	require.NoError(e.t, err)
	return id
}

// recordDays writes consecutive completions starting at dayZero.
func (e *ledgerEnv) recordDays(owner types.Account, habitID uint64, statuses ...uint64) {
	e.t.Helper()
	for i, status := range statuses {
		date := dayZero + int64(i)*types.DayMillis
		err := e.ledger.RecordCompletion(owner, habitID, date, e.input(owner, types.WidthUint8, status))
		require.NoError(e.t, err)
	}
}

// decryptStat runs the two-phase protocol for one aggregation and decrypts
// the result for the owner.
func (e *ledgerEnv) decryptStat(owner types.Account, fn func(ledger.Call) (types.Handle, *ledger.Receipt, error)) uint64 {
	e.t.Helper()

	_, receipt, err := fn(ledger.Call{Caller: owner, Mode: ledger.Commit})
	require.NoError(e.t, err)
	require.NotNil(e.t, receipt)

	handle, _, err := fn(ledger.Call{Caller: owner, Mode: ledger.Simulate})
	require.NoError(e.t, err)

	v, err := e.relay.UserDecrypt(owner, handle)
	require.NoError(e.t, err)
	return v
}
