package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

func TestCreateHabit(t *testing.T) {
	f := newFixture(t)

	id := f.createHabit(alice, 30, 75)
	assert.Equal(t, uint64(0), id)

	habit, err := f.ledger.GetHabit(id)
	require.NoError(t, err)
	assert.Equal(t, alice, habit.Owner)
	assert.Equal(t, "Daily Exercise", habit.Name)
	assert.Equal(t, uint32(30), habit.TargetDays)
	assert.True(t, habit.IsActive)

	// The owner can decrypt the standard straight away.
	v, err := f.relay.UserDecrypt(alice, habit.CompletionStandard)
	require.NoError(t, err)
	assert.Equal(t, uint64(75), v)

	// The creation event carries the plaintext name only.
	require.Len(t, f.sink.events, 1)
	assert.Equal(t, types.EventHabitCreated, f.sink.events[0].Kind)
	assert.Equal(t, "Daily Exercise", f.sink.events[0].Name)

	// Ids are sequential.
	assert.Equal(t, uint64(1), f.createHabit(alice, 60, 80))
}

func TestCreateHabitValidation(t *testing.T) {
	f := newFixture(t)
	standard := f.encryptInput(alice, types.WidthUint8, 75)

	_, err := f.ledger.CreateHabit(alice, CreateHabitParams{
		Name: "", TargetDays: 30, HabitType: types.HabitDaily, Standard: standard,
	})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = f.ledger.CreateHabit(alice, CreateHabitParams{
		Name: "Read", TargetDays: 0, HabitType: types.HabitDaily, Standard: standard,
	})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = f.ledger.CreateHabit(alice, CreateHabitParams{
		Name: "Read", TargetDays: 7, HabitType: types.HabitType(9), Standard: standard,
	})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestCreateHabitRejectsBadProof(t *testing.T) {
	f := newFixture(t)

	t.Run("proof bound to another account", func(t *testing.T) {
		standard := f.encryptInput(bob, types.WidthUint8, 75)
		_, err := f.ledger.CreateHabit(alice, CreateHabitParams{
			Name: "Read", TargetDays: 7, HabitType: types.HabitDaily, Standard: standard,
		})
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("foreign protocol version", func(t *testing.T) {
		standard := f.encryptInput(alice, types.WidthUint8, 75)
		standard.Handle[31] = 9
		_, err := f.ledger.CreateHabit(alice, CreateHabitParams{
			Name: "Read", TargetDays: 7, HabitType: types.HabitDaily, Standard: standard,
		})
		assert.ErrorIs(t, err, types.ErrUnsupportedProtocol)
	})
}

func TestUpdateHabit(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	newStandard := f.encryptInput(alice, types.WidthUint8, 80)
	require.NoError(t, f.ledger.UpdateHabit(alice, id, "New Name", "New Desc", 60, newStandard))

	habit, err := f.ledger.GetHabit(id)
	require.NoError(t, err)
	assert.Equal(t, "New Name", habit.Name)
	assert.Equal(t, uint32(60), habit.TargetDays)

	v, err := f.relay.UserDecrypt(alice, habit.CompletionStandard)
	require.NoError(t, err)
	assert.Equal(t, uint64(80), v)
}

func TestUpdateHabitFailures(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	t.Run("non-owner", func(t *testing.T) {
		err := f.ledger.UpdateHabit(bob, id, "Hacked", "Desc", 30, f.encryptInput(bob, types.WidthUint8, 80))
		assert.ErrorIs(t, err, types.ErrNotOwner)

		// State unchanged.
		habit, err := f.ledger.GetHabit(id)
		require.NoError(t, err)
		assert.Equal(t, "Daily Exercise", habit.Name)
	})

	t.Run("missing habit", func(t *testing.T) {
		err := f.ledger.UpdateHabit(alice, 99, "Name", "Desc", 30, f.encryptInput(alice, types.WidthUint8, 80))
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("invalid fields", func(t *testing.T) {
		err := f.ledger.UpdateHabit(alice, id, "", "Desc", 30, f.encryptInput(alice, types.WidthUint8, 80))
		assert.ErrorIs(t, err, types.ErrInvalidInput)
		err = f.ledger.UpdateHabit(alice, id, "Name", "Desc", 0, f.encryptInput(alice, types.WidthUint8, 80))
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("inactive habit", func(t *testing.T) {
		require.NoError(t, f.ledger.DeleteHabit(alice, id))
		err := f.ledger.UpdateHabit(alice, id, "Name", "Desc", 30, f.encryptInput(alice, types.WidthUint8, 80))
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestDeleteHabit(t *testing.T) {
	f := newFixture(t)
	id := f.createHabit(alice, 30, 75)

	require.NoError(t, f.ledger.DeleteHabit(alice, id))

	habit, err := f.ledger.GetHabit(id)
	require.NoError(t, err)
	assert.False(t, habit.IsActive)

	// Idempotent on already-inactive, with no second event.
	events := len(f.sink.events)
	require.NoError(t, f.ledger.DeleteHabit(alice, id))
	assert.Len(t, f.sink.events, events)

	assert.ErrorIs(t, f.ledger.DeleteHabit(bob, id), types.ErrNotOwner)
	assert.ErrorIs(t, f.ledger.DeleteHabit(alice, 99), types.ErrNotFound)
}

func TestGetUserHabits(t *testing.T) {
	f := newFixture(t)

	a := f.createHabit(alice, 30, 75)
	b := f.createHabit(alice, 60, 80)
	f.createHabit(bob, 7, 50)

	ids, err := f.ledger.GetUserHabits(alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{a, b}, ids)

	// Deletion never removes an id from the owner's list.
	require.NoError(t, f.ledger.DeleteHabit(alice, a))
	ids, err = f.ledger.GetUserHabits(alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{a, b}, ids)

	none, err := f.ledger.GetUserHabits("carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}
