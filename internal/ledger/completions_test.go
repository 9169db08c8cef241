package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

func TestRecordCompletion(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	f.record(alice, id, 0, 1)

	rec, err := f.ledger.GetCompletionRecord(id, baseDay)
	require.NoError(t, err)
	assert.True(t, rec.Exists)

	// Recording authorizes the owner on the stored status.
	v, err := f.relay.UserDecrypt(alice, rec.CompletionStatus)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	// An unrecorded day yields a non-existing record, not an error.
	rec, err = f.ledger.GetCompletionRecord(id, baseDay+types.DayMillis)
	require.NoError(t, err)
	assert.False(t, rec.Exists)
}

func TestRecordCompletionFailures(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	t.Run("non-owner", func(t *testing.T) {
		err := f.ledger.RecordCompletion(bob, id, baseDay, f.encryptInput(bob, types.WidthUint8, 1))
		assert.ErrorIs(t, err, types.ErrNotOwner)

		dates, err := f.ledger.GetCompletionDates(id)
		require.NoError(t, err)
		assert.Empty(t, dates)
	})

	t.Run("misaligned date", func(t *testing.T) {
		err := f.ledger.RecordCompletion(alice, id, baseDay+1, f.encryptInput(alice, types.WidthUint8, 1))
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("missing habit", func(t *testing.T) {
		err := f.ledger.RecordCompletion(alice, 99, baseDay, f.encryptInput(alice, types.WidthUint8, 1))
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRecordCompletionOverwrites(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	f.record(alice, id, 0, 1)
	f.record(alice, id, 0, 0)

	dates, err := f.ledger.GetCompletionDates(id)
	require.NoError(t, err)
	assert.Len(t, dates, 1)

	rec, err := f.ledger.GetCompletionRecord(id, baseDay)
	require.NoError(t, err)
	v, err := f.relay.UserDecrypt(alice, rec.CompletionStatus)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
}

func TestBatchRecordCompletion(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	dates := []int64{baseDay, baseDay - types.DayMillis, baseDay - 2*types.DayMillis}
	statuses := []fhe.InputCiphertext{
		f.encryptInput(alice, types.WidthUint8, 1),
		f.encryptInput(alice, types.WidthUint8, 1),
		f.encryptInput(alice, types.WidthUint8, 1),
	}
	require.NoError(t, f.ledger.BatchRecordCompletion(alice, id, dates, statuses))

	got, err := f.ledger.GetCompletionDates(id)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestBatchRecordCompletionAllOrNothing(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	t.Run("length mismatch", func(t *testing.T) {
		err := f.ledger.BatchRecordCompletion(alice, id,
			[]int64{baseDay, baseDay - types.DayMillis},
			[]fhe.InputCiphertext{f.encryptInput(alice, types.WidthUint8, 1)})
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("misaligned date mid-batch", func(t *testing.T) {
		err := f.ledger.BatchRecordCompletion(alice, id,
			[]int64{baseDay, baseDay - types.DayMillis + 7},
			[]fhe.InputCiphertext{
				f.encryptInput(alice, types.WidthUint8, 1),
				f.encryptInput(alice, types.WidthUint8, 1),
			})
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	// No partial writes from either failure.
	dates, err := f.ledger.GetCompletionDates(id)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestIsCompleted(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)
	f.record(alice, id, 0, 1)

	t.Run("recorded day", func(t *testing.T) {
		v := f.readStat(alice, func(c Call) (types.Handle, *Receipt, error) {
			return f.ledger.IsCompleted(c, id, baseDay)
		})
		assert.Equal(t, uint64(1), v)
	})

	t.Run("absent day decrypts to zero", func(t *testing.T) {
		v := f.readStat(alice, func(c Call) (types.Handle, *Receipt, error) {
			return f.ledger.IsCompleted(c, id, baseDay-5*types.DayMillis)
		})
		assert.Equal(t, uint64(0), v)
	})

	t.Run("misaligned date", func(t *testing.T) {
		_, _, err := f.ledger.IsCompleted(Call{Caller: alice, Mode: Commit}, id, baseDay+3)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})
}
