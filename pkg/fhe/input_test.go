package fhe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

const alice = types.Account("alice")

func TestInputRoundTrip(t *testing.T) {
	e := newEngine(t)

	in, err := e.EncryptInput(alice, types.WidthUint8, 75)
	require.NoError(t, err)

	ct, err := e.VerifyInput(in, alice)
	require.NoError(t, err)

	v, err := e.Reveal(ct)
	require.NoError(t, err)
	assert.Equal(t, uint64(75), v)
}

func TestInputHandlesAreSalted(t *testing.T) {
	e := newEngine(t)

	a, err := e.EncryptInput(alice, types.WidthUint8, 1)
	require.NoError(t, err)
	b, err := e.EncryptInput(alice, types.WidthUint8, 1)
	require.NoError(t, err)

	// Same plaintext twice must not produce linkable handles.
	assert.NotEqual(t, a.Handle, b.Handle)
}

func TestVerifyInputRejections(t *testing.T) {
	e := newEngine(t)

	in, err := e.EncryptInput(alice, types.WidthUint8, 75)
	require.NoError(t, err)

	t.Run("wrong account", func(t *testing.T) {
		_, err := e.VerifyInput(in, types.Account("bob"))
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("tampered proof", func(t *testing.T) {
		bad := in
		bad.Proof = append([]byte(nil), in.Proof...)
		bad.Proof[0] ^= 0xff
		_, err := e.VerifyInput(bad, alice)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("tampered handle", func(t *testing.T) {
		bad := in
		bad.Handle[0] ^= 0xff
		_, err := e.VerifyInput(bad, alice)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("foreign protocol version", func(t *testing.T) {
		bad := in
		bad.Handle[31] = 2
		_, err := e.VerifyInput(bad, alice)
		assert.ErrorIs(t, err, types.ErrUnsupportedProtocol)
	})

	t.Run("foreign engine secret", func(t *testing.T) {
		secret := make([]byte, SecretSize)
		other, err := NewEngine(secret)
		require.NoError(t, err)
		_, err = other.VerifyInput(in, alice)
		assert.ErrorIs(t, err, types.ErrInvalidInput)
	})
}
