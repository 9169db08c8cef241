package fhe

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// InputCiphertext is a client-encrypted value submitted to the ledger. The
// proof binds the handle to the submitting account and the protocol
// version; the ledger verifies it before accepting the ciphertext.
type InputCiphertext struct {
	Handle types.Handle
	Data   []byte
	Proof  []byte
}

// EncryptInput encrypts a value on behalf of an account and produces the
// validity proof. Each call derives a fresh handle (inputs are salted), so
// two encryptions of the same value are unlinkable.
func (e *Engine) EncryptInput(account types.Account, w types.Width, value uint64) (InputCiphertext, error) {
	if !w.Valid() {
		return InputCiphertext{}, fmt.Errorf("width tag %d: %w", w, types.ErrInvalidInput)
	}
	if value > w.Max() {
		return InputCiphertext{}, fmt.Errorf("value %d exceeds width %d: %w", value, w, types.ErrInvalidInput)
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return InputCiphertext{}, fmt.Errorf("generating input salt: %w", err)
	}
	h := deriveHandle("input", w, []byte(account), u64be(value), salt)
	ct := e.seal(h, value)
	return InputCiphertext{
		Handle: ct.Handle,
		Data:   ct.Data,
		Proof:  e.inputProof(ct.Handle, account),
	}, nil
}

// VerifyInput checks an input ciphertext's proof for the given account and
// returns the accepted ciphertext. Foreign protocol versions are rejected
// with ErrUnsupportedProtocol, tampered or misbound proofs with
// ErrInvalidInput.
func (e *Engine) VerifyInput(in InputCiphertext, account types.Account) (Ciphertext, error) {
	if in.Handle.Protocol() != types.ProtocolVersion {
		return Ciphertext{}, fmt.Errorf("input protocol %d: %w", in.Handle.Protocol(), types.ErrUnsupportedProtocol)
	}
	ct := Ciphertext{Handle: in.Handle, Data: in.Data}
	if err := checkEnvelope(ct); err != nil {
		return Ciphertext{}, err
	}
	if !hmac.Equal(in.Proof, e.inputProof(in.Handle, account)) {
		return Ciphertext{}, fmt.Errorf("input proof verification failed: %w", types.ErrInvalidInput)
	}
	return ct, nil
}

// inputProof computes the HMAC binding (handle, account, protocol).
func (e *Engine) inputProof(h types.Handle, account types.Account) []byte {
	mac := hmac.New(sha256.New, e.secret[:])
	mac.Write([]byte(labelProof))
	mac.Write(h[:])
	mac.Write([]byte(account))
	mac.Write([]byte{types.ProtocolVersion})
	return mac.Sum(nil)
}
