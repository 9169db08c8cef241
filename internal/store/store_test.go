package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// setupStore opens a Store in a temp directory, closed via t.Cleanup.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, s.Open(cfg))
	t.Cleanup(func() { s.Close() })
	return s
}

func testHandle(seed byte, w types.Width) types.Handle {
	var h types.Handle
	for i := range h {
		h[i] = seed
	}
	h[30] = byte(w)
	h[31] = types.ProtocolVersion
	return h
}

func TestStoreLifecycle(t *testing.T) {
	s := New()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	require.NoError(t, s.Open(cfg))
	assert.ErrorIs(t, s.Open(cfg), types.ErrAlreadyOpen)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // idempotent

	_, err := s.Queries()
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	assert.ErrorIs(t, s.Transact(func(q *Queries) error { return nil }), types.ErrStoreClosed)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Open(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, s.Open(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestNextID(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	for want := uint64(0); want < 3; want++ {
		got, err := q.NextID(CounterHabitID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Counters are independent.
	got, err := q.NextID(CounterRewardID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestHabitRoundTrip(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	h := &types.Habit{
		ID:                 0,
		Owner:              "alice",
		Name:               "Daily Exercise",
		Description:        "Exercise for 30 minutes",
		TargetDays:         30,
		HabitType:          types.HabitDaily,
		CompletionStandard: testHandle(0xaa, types.WidthUint8),
		CreatedAt:          time.Now().UTC(),
		IsActive:           true,
	}
	require.NoError(t, q.InsertHabit(h))

	got, err := q.GetHabit(0)
	require.NoError(t, err)
	assert.Equal(t, h.Owner, got.Owner)
	assert.Equal(t, h.Name, got.Name)
	assert.Equal(t, h.TargetDays, got.TargetDays)
	assert.Equal(t, h.CompletionStandard, got.CompletionStandard)
	assert.True(t, got.IsActive)

	got.Name = "Morning Exercise"
	got.IsActive = false
	require.NoError(t, q.UpdateHabit(got))

	again, err := q.GetHabit(0)
	require.NoError(t, err)
	assert.Equal(t, "Morning Exercise", again.Name)
	assert.False(t, again.IsActive)

	_, err = q.GetHabit(99)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, q.UpdateHabit(&types.Habit{ID: 99, CompletionStandard: testHandle(1, types.WidthUint8)}), types.ErrNotFound)
}

func TestListOwnerHabitIDs(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	for i := uint64(0); i < 3; i++ {
		owner := types.Account("alice")
		if i == 1 {
			owner = "bob"
		}
		require.NoError(t, q.InsertHabit(&types.Habit{
			ID: i, Owner: owner, Name: "h", TargetDays: 7,
			CompletionStandard: testHandle(byte(i), types.WidthUint8),
			CreatedAt:          time.Now(), IsActive: i != 2,
		}))
	}

	ids, err := q.ListOwnerHabitIDs("alice")
	require.NoError(t, err)
	// Inactive habits stay listed.
	assert.Equal(t, []uint64{0, 2}, ids)

	none, err := q.ListOwnerHabitIDs("carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCompletionUpsertKeepsSingleKey(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	date := 20_000 * types.DayMillis
	require.NoError(t, q.UpsertCompletion(1, date, testHandle(0x01, types.WidthUint8)))
	require.NoError(t, q.UpsertCompletion(1, date, testHandle(0x02, types.WidthUint8)))

	dates, err := q.ListCompletionDates(1)
	require.NoError(t, err)
	assert.Len(t, dates, 1)

	rec, err := q.GetCompletion(1, date)
	require.NoError(t, err)
	assert.Equal(t, testHandle(0x02, types.WidthUint8), rec.CompletionStatus)
	assert.True(t, rec.Exists)

	_, err = q.GetCompletion(1, date+types.DayMillis)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListCompletionsMostRecentFirst(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	base := 20_000 * types.DayMillis
	for i := int64(0); i < 3; i++ {
		require.NoError(t, q.UpsertCompletion(1, base+i*types.DayMillis, testHandle(byte(i), types.WidthUint8)))
	}

	records, err := q.ListCompletions(1)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, base+2*types.DayMillis, records[0].Date)
	assert.Equal(t, base, records[2].Date)

	dates, err := q.ListCompletionDates(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{base, base + types.DayMillis, base + 2*types.DayMillis}, dates)
}

func TestRewardUniqueness(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	require.NoError(t, q.InsertHabit(&types.Habit{
		ID: 0, Owner: "alice", Name: "h", TargetDays: 30,
		CompletionStandard: testHandle(1, types.WidthUint8),
		CreatedAt:          time.Now(), IsActive: true,
	}))

	r := &types.Reward{
		ID: 0, HabitID: 0, RewardType: types.RewardMilestone, Threshold: 50,
		RewardAmount: testHandle(0x0f, types.WidthUint32),
		Claimed:      true, ClaimedAt: time.Now().UTC(),
	}
	require.NoError(t, q.InsertReward(r))

	// The (habit, type, threshold) key admits a single row.
	dup := *r
	dup.ID = 1
	assert.Error(t, q.InsertReward(&dup))

	got, err := q.GetReward(0, types.RewardMilestone, 50)
	require.NoError(t, err)
	assert.True(t, got.Claimed)
	assert.Equal(t, r.RewardAmount, got.RewardAmount)

	_, err = q.GetReward(0, types.RewardConsecutive, 50)
	assert.ErrorIs(t, err, types.ErrNotFound)

	rewards, err := q.ListOwnerRewards("alice")
	require.NoError(t, err)
	assert.Len(t, rewards, 1)
}

func TestGrants(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	h := testHandle(0x42, types.WidthUint32)
	g := types.Grant{GrantID: "g-1", Handle: h, Account: "alice", CreatedAt: time.Now()}
	require.NoError(t, q.InsertGrant(g))
	require.NoError(t, q.InsertGrant(g)) // append-only, idempotent

	ok, err := q.HasGrant(h, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = q.HasGrant(h, "bob")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCipherRoundTrip(t *testing.T) {
	s := setupStore(t)
	q, err := s.Queries()
	require.NoError(t, err)

	h := testHandle(0x07, types.WidthUint8)
	require.NoError(t, q.PutCipher(h, []byte{0x99}))
	require.NoError(t, q.PutCipher(h, []byte{0x99}))

	data, err := q.GetCipher(h)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x99}, data)

	_, err = q.GetCipher(testHandle(0x08, types.WidthUint8))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTransactRollsBackOnError(t *testing.T) {
	s := setupStore(t)

	err := s.Transact(func(q *Queries) error {
		if err := q.UpsertCompletion(1, 0, testHandle(1, types.WidthUint8)); err != nil {
			return err
		}
		return types.ErrInvalidInput
	})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	q, err := s.Queries()
	require.NoError(t, err)
	dates, err := q.ListCompletionDates(1)
	require.NoError(t, err)
	assert.Empty(t, dates)
}
