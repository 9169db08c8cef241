package fhe

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// Domain separation labels for handle derivation and key expansion.
const (
	labelHandle    = "quantumhabit/fhe/handle/v1"
	labelKeystream = "quantumhabit/fhe/keystream/v1"
	labelProof     = "quantumhabit/fhe/input-proof/v1"
)

// SecretSize is the engine secret key length in bytes.
const SecretSize = 32

// Ciphertext pairs a handle with its encrypted payload. The payload length
// equals the handle's width in bytes.
type Ciphertext struct {
	Handle types.Handle
	Data   []byte
}

// Engine evaluates homomorphic operations. It holds the platform secret;
// ledger state never sees plaintext, and callers obtain plaintext only via
// the relay's grant-checked Reveal.
type Engine struct {
	secret [SecretSize]byte
}

// NewEngine creates an engine from a 32-byte secret.
func NewEngine(secret []byte) (*Engine, error) {
	if len(secret) != SecretSize {
		return nil, fmt.Errorf("engine secret must be %d bytes: %w", SecretSize, types.ErrInvalidInput)
	}
	e := &Engine{}
	copy(e.secret[:], secret)
	return e, nil
}

// GenerateSecret returns a fresh random engine secret.
func GenerateSecret() ([]byte, error) {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating engine secret: %w", err)
	}
	return secret, nil
}

// deriveHandle computes a content address for the result of op over the
// given parts. Each part is length-prefixed so distinct operand sequences
// cannot collide. Byte 30 carries the width tag, byte 31 the protocol
// version.
func deriveHandle(op string, w types.Width, parts ...[]byte) types.Handle {
	h := sha256.New()
	h.Write([]byte(labelHandle))
	writePart(h, []byte(op))
	for _, p := range parts {
		writePart(h, p)
	}
	var out types.Handle
	copy(out[:], h.Sum(nil))
	out[30] = byte(w)
	out[31] = types.ProtocolVersion
	return out
}

func writePart(w io.Writer, p []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(p)))
	w.Write(n[:])
	w.Write(p)
}

// keystream expands the engine secret and a handle into a pad of the
// handle's width. Derivation is deterministic so sealing the same value
// under the same handle yields identical ciphertext bytes.
func (e *Engine) keystream(h types.Handle) []byte {
	kdf := hkdf.New(sha256.New, e.secret[:], h[:], []byte(labelKeystream))
	pad := make([]byte, int(h.Width()))
	_, _ = io.ReadFull(kdf, pad)
	return pad
}

// seal encrypts value under the given handle.
func (e *Engine) seal(h types.Handle, value uint64) Ciphertext {
	w := h.Width()
	data := encodeValue(value&w.Max(), w)
	for i, k := range e.keystream(h) {
		data[i] ^= k
	}
	return Ciphertext{Handle: h, Data: data}
}

// open decrypts a ciphertext, validating its handle envelope first.
func (e *Engine) open(ct Ciphertext) (uint64, error) {
	if err := checkEnvelope(ct); err != nil {
		return 0, err
	}
	data := make([]byte, len(ct.Data))
	copy(data, ct.Data)
	for i, k := range e.keystream(ct.Handle) {
		data[i] ^= k
	}
	return decodeValue(data), nil
}

// checkEnvelope validates handle protocol, width tag and payload length.
func checkEnvelope(ct Ciphertext) error {
	if ct.Handle.Protocol() != types.ProtocolVersion {
		return fmt.Errorf("handle protocol %d: %w", ct.Handle.Protocol(), types.ErrUnsupportedProtocol)
	}
	w := ct.Handle.Width()
	if !w.Valid() {
		return fmt.Errorf("handle width tag %d: %w", w, types.ErrInvalidInput)
	}
	if len(ct.Data) != int(w) {
		return fmt.Errorf("ciphertext payload length %d for width %d: %w", len(ct.Data), w, types.ErrInvalidInput)
	}
	return nil
}

// TrivialEncrypt encrypts a public constant. The handle is a pure function
// of the value and width, so trivial ciphertexts are stable across calls.
func (e *Engine) TrivialEncrypt(value uint64, w types.Width) (Ciphertext, error) {
	if !w.Valid() {
		return Ciphertext{}, fmt.Errorf("width tag %d: %w", w, types.ErrInvalidInput)
	}
	if value > w.Max() {
		return Ciphertext{}, fmt.Errorf("value %d exceeds width %d: %w", value, w, types.ErrInvalidInput)
	}
	h := deriveHandle("trivial", w, u64be(value))
	return e.seal(h, value), nil
}

// Reveal decrypts a ciphertext to its plaintext value. Only the decryption
// relay may call this, after verifying an ACL grant.
func (e *Engine) Reveal(ct Ciphertext) (uint64, error) {
	return e.open(ct)
}

// u64be renders a value as 8 big-endian bytes for handle derivation.
func u64be(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[:]
}

// encodeValue renders value big-endian at the given byte width.
func encodeValue(value uint64, w types.Width) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], value)
	return buf[8-int(w):]
}

// decodeValue reads a big-endian value of up to 8 bytes.
func decodeValue(data []byte) uint64 {
	var v uint64
	for _, b := range data {
		v = v<<8 | uint64(b)
	}
	return v
}
