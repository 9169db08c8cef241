package types

import "encoding/hex"

// ProtocolVersion identifies the ciphertext encoding protocol. Input proofs
// referencing a different version are rejected with ErrUnsupportedProtocol.
const ProtocolVersion byte = 1

// Width is the plaintext width of an encrypted value. The aggregation
// algorithms are width-specific, so the set is closed: 8-bit values carry
// completion status, quality standards and percentages; 32-bit values carry
// counts, streaks and reward amounts.
type Width byte

const (
	WidthUint8  Width = 1
	WidthUint32 Width = 4
)

// Valid reports whether w is a recognized width tag.
func (w Width) Valid() bool {
	return w == WidthUint8 || w == WidthUint32
}

// Bits returns the plaintext width in bits.
func (w Width) Bits() int { return int(w) * 8 }

// Max returns the largest plaintext value representable at this width.
func (w Width) Max() uint64 {
	return 1<<(uint(w)*8) - 1
}

// Handle is an opaque, content-addressed reference to an encrypted value.
// Bytes 0..29 are derived from the producing operation and its operands,
// byte 30 is the width tag and byte 31 the protocol version. Identical
// operations over identical operands always derive the identical handle;
// the commit-then-simulate retrieval protocol depends on this.
//
// The zero Handle refers to no ciphertext and is treated by consumers as a
// trivial zero of the expected width.
type Handle [32]byte

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// Width returns the width tag embedded in the handle.
func (h Handle) Width() Width { return Width(h[30]) }

// Protocol returns the protocol version embedded in the handle.
func (h Handle) Protocol() byte { return h[31] }

// Hex returns the handle as a lowercase hex string.
func (h Handle) Hex() string {
	return hex.EncodeToString(h[:])
}

// ParseHandle decodes a 64-character hex string into a Handle.
// Returns ErrInvalidInput on malformed input.
func ParseHandle(s string) (Handle, error) {
	var h Handle
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != len(h) {
		return Handle{}, ErrInvalidInput
	}
	copy(h[:], raw)
	return h, nil
}
