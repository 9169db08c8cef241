package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RachelLancelot/quantumhabit/internal/relay"
	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

const (
	alice = types.Account("alice")
	bob   = types.Account("bob")

	// baseDay is an arbitrary day bucket; tests count days from here.
	baseDay = 20_000 * types.DayMillis
)

// memorySink captures emitted events for assertions.
type memorySink struct {
	events []types.Event
}

func (m *memorySink) Emit(ev types.Event) { m.events = append(m.events, ev) }

func (m *memorySink) reset() { m.events = nil }

// fixture wires a store, engine, ledger and relay over a temp directory.
type fixture struct {
	t      *testing.T
	ledger *Ledger
	relay  *relay.Relay
	engine *fhe.Engine
	store  *store.Store
	sink   *memorySink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := store.New()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, s.Open(cfg))
	t.Cleanup(func() { s.Close() })

	secret := make([]byte, fhe.SecretSize)
	for i := range secret {
		secret[i] = byte(i * 3)
	}
	engine, err := fhe.NewEngine(secret)
	require.NoError(t, err)

	sink := &memorySink{}
	return &fixture{
		t:      t,
		ledger: New(s, engine, WithSink(sink)),
		relay:  relay.New(s, engine),
		engine: engine,
		store:  s,
		sink:   sink,
	}
}

// encryptInput encrypts a client input value for an account.
func (f *fixture) encryptInput(account types.Account, w types.Width, value uint64) fhe.InputCiphertext {
	f.t.Helper()
	in, err := f.engine.EncryptInput(account, w, value)
	require.NoError(f.t, err)
	return in
}

// createHabit registers a habit with the given quality standard.
func (f *fixture) createHabit(owner types.Account, targetDays uint32, standard uint64) uint64 {
	f.t.Helper()
	id, err := f.ledger.CreateHabit(owner, CreateHabitParams{
		Name:        "Daily Exercise",
		Description: "Exercise for 30 minutes",
		TargetDays:  targetDays,
		HabitType:   types.HabitDaily,
		Standard:    f.encryptInput(owner, types.WidthUint8, standard),
	})
	require.NoError(f.t, err)
	return id
}

// record writes one completion; day counts backwards from baseDay.
func (f *fixture) record(owner types.Account, habitID uint64, daysBack int64, status uint64) {
	f.t.Helper()
	date := baseDay - daysBack*types.DayMillis
	err := f.ledger.RecordCompletion(owner, habitID, date, f.encryptInput(owner, types.WidthUint8, status))
	require.NoError(f.t, err)
}

// readStat runs the full dual-call protocol for one aggregation: commit,
// simulate with identical arguments, check the handles line up, decrypt.
func (f *fixture) readStat(owner types.Account, fn func(Call) (types.Handle, *Receipt, error)) uint64 {
	f.t.Helper()

	zero, receipt, err := fn(Call{Caller: owner, Mode: Commit})
	require.NoError(f.t, err)
	require.True(f.t, zero.IsZero(), "commit must not return the value handle")
	require.NotNil(f.t, receipt)
	require.Len(f.t, receipt.Handles, 1)

	handle, noReceipt, err := fn(Call{Caller: owner, Mode: Simulate})
	require.NoError(f.t, err)
	require.Nil(f.t, noReceipt)
	require.Equal(f.t, receipt.Handles[0], handle, "simulate must reproduce the authorized handle")

	v, err := f.relay.UserDecrypt(owner, handle)
	require.NoError(f.t, err)
	return v
}

// readStatHandle is readStat without the decrypt, for tests that inspect
// the handle itself.
func (f *fixture) readStatHandle(owner types.Account, fn func(Call) (types.Handle, *Receipt, error)) types.Handle {
	f.t.Helper()

	_, receipt, err := fn(Call{Caller: owner, Mode: Commit})
	require.NoError(f.t, err)
	require.Len(f.t, receipt.Handles, 1)

	handle, _, err := fn(Call{Caller: owner, Mode: Simulate})
	require.NoError(f.t, err)
	require.Equal(f.t, receipt.Handles[0], handle)
	return handle
}
