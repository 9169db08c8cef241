package relay

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

func setupRelay(t *testing.T) (*Relay, *store.Store, *fhe.Engine) {
	t.Helper()

	s := store.New()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}
	require.NoError(t, s.Open(cfg))
	t.Cleanup(func() { _ = s.Close() })

	secret := make([]byte, fhe.SecretSize)
	for i := range secret {
		secret[i] = byte(i + 1)
	}
	engine, err := fhe.NewEngine(secret)
	require.NoError(t, err)

	return New(s, engine), s, engine
}

func grantTo(t *testing.T, s *store.Store, handle types.Handle, account types.Account) {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	q, err := s.Queries()
	require.NoError(t, err)
	err = q.InsertGrant(types.Grant{
		GrantID:   id.String(),
		Handle:    handle,
		Account:   account,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestUserDecrypt(t *testing.T) {
	relay, s, engine := setupRelay(t)

	ct, err := engine.TrivialEncrypt(42, types.WidthUint32)
	require.NoError(t, err)

	q, err := s.Queries()
	require.NoError(t, err)
	require.NoError(t, q.PutCipher(ct.Handle, ct.Data))
	grantTo(t, s, ct.Handle, "alice")

	v, err := relay.UserDecrypt("alice", ct.Handle)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
}

func TestUserDecryptRequiresGrant(t *testing.T) {
	relay, s, engine := setupRelay(t)

	ct, err := engine.TrivialEncrypt(42, types.WidthUint32)
	require.NoError(t, err)

	q, err := s.Queries()
	require.NoError(t, err)
	require.NoError(t, q.PutCipher(ct.Handle, ct.Data))
	grantTo(t, s, ct.Handle, "alice")

	// A stored ciphertext is still opaque to accounts without a grant.
	_, err = relay.UserDecrypt("bob", ct.Handle)
	assert.ErrorIs(t, err, types.ErrNotAuthorized)
}

func TestUserDecryptUnknownHandle(t *testing.T) {
	relay, _, engine := setupRelay(t)

	ct, err := engine.TrivialEncrypt(1, types.WidthUint8)
	require.NoError(t, err)

	_, err = relay.UserDecrypt("alice", ct.Handle)
	assert.ErrorIs(t, err, types.ErrNotAuthorized)
}
