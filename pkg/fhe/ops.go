package fhe

import (
	"fmt"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// binaryOperands validates two operands of the same width and returns their
// plaintext values and common width.
func (e *Engine) binaryOperands(a, b Ciphertext) (uint64, uint64, types.Width, error) {
	if a.Handle.Width() != b.Handle.Width() {
		return 0, 0, 0, fmt.Errorf("operand widths %d and %d: %w",
			a.Handle.Width(), b.Handle.Width(), types.ErrInvalidInput)
	}
	av, err := e.open(a)
	if err != nil {
		return 0, 0, 0, err
	}
	bv, err := e.open(b)
	if err != nil {
		return 0, 0, 0, err
	}
	return av, bv, a.Handle.Width(), nil
}

// Add returns a + b, wrapping at the operand width.
func (e *Engine) Add(a, b Ciphertext) (Ciphertext, error) {
	av, bv, w, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("add", w, a.Handle[:], b.Handle[:])
	return e.seal(h, (av+bv)&w.Max()), nil
}

// Sub returns a - b, wrapping at the operand width.
func (e *Engine) Sub(a, b Ciphertext) (Ciphertext, error) {
	av, bv, w, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("sub", w, a.Handle[:], b.Handle[:])
	return e.seal(h, (av-bv)&w.Max()), nil
}

// MulPlain returns a * k for a plaintext scalar k, wrapping at the width.
func (e *Engine) MulPlain(a Ciphertext, k uint64) (Ciphertext, error) {
	av, err := e.open(a)
	if err != nil {
		return Ciphertext{}, err
	}
	w := a.Handle.Width()
	h := deriveHandle("mul_plain", w, a.Handle[:], u64be(k))
	return e.seal(h, (av*k)&w.Max()), nil
}

// DivPlain returns a / k for a plaintext scalar k, floor division.
// A zero divisor is an input error.
func (e *Engine) DivPlain(a Ciphertext, k uint64) (Ciphertext, error) {
	if k == 0 {
		return Ciphertext{}, fmt.Errorf("division by zero: %w", types.ErrInvalidInput)
	}
	av, err := e.open(a)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("div_plain", a.Handle.Width(), a.Handle[:], u64be(k))
	return e.seal(h, av/k), nil
}

// Ge returns an 8-bit 0/1 indicator of a >= b.
func (e *Engine) Ge(a, b Ciphertext) (Ciphertext, error) {
	av, bv, _, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("ge", types.WidthUint8, a.Handle[:], b.Handle[:])
	return e.seal(h, boolBit(av >= bv)), nil
}

// Gt returns an 8-bit 0/1 indicator of a > b.
func (e *Engine) Gt(a, b Ciphertext) (Ciphertext, error) {
	av, bv, _, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("gt", types.WidthUint8, a.Handle[:], b.Handle[:])
	return e.seal(h, boolBit(av > bv)), nil
}

// Ne returns an 8-bit 0/1 indicator of a != b.
func (e *Engine) Ne(a, b Ciphertext) (Ciphertext, error) {
	av, bv, _, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("ne", types.WidthUint8, a.Handle[:], b.Handle[:])
	return e.seal(h, boolBit(av != bv)), nil
}

// And returns the logical AND of two indicator ciphertexts: 1 when both
// operands are nonzero, 0 otherwise.
func (e *Engine) And(a, b Ciphertext) (Ciphertext, error) {
	av, bv, _, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("and", types.WidthUint8, a.Handle[:], b.Handle[:])
	return e.seal(h, boolBit(av != 0 && bv != 0)), nil
}

// Select returns a when cond is nonzero, b otherwise. cond must be 8-bit;
// a and b must share a width, which the result keeps.
func (e *Engine) Select(cond, a, b Ciphertext) (Ciphertext, error) {
	if cond.Handle.Width() != types.WidthUint8 {
		return Ciphertext{}, fmt.Errorf("select condition width %d: %w", cond.Handle.Width(), types.ErrInvalidInput)
	}
	cv, err := e.open(cond)
	if err != nil {
		return Ciphertext{}, err
	}
	av, bv, w, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("select", w, cond.Handle[:], a.Handle[:], b.Handle[:])
	if cv != 0 {
		return e.seal(h, av), nil
	}
	return e.seal(h, bv), nil
}

// Min returns the smaller of a and b.
func (e *Engine) Min(a, b Ciphertext) (Ciphertext, error) {
	av, bv, w, err := e.binaryOperands(a, b)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("min", w, a.Handle[:], b.Handle[:])
	if bv < av {
		av = bv
	}
	return e.seal(h, av), nil
}

// Cast re-encrypts a at a different width, truncating on narrowing.
func (e *Engine) Cast(a Ciphertext, to types.Width) (Ciphertext, error) {
	if !to.Valid() {
		return Ciphertext{}, fmt.Errorf("cast width tag %d: %w", to, types.ErrInvalidInput)
	}
	av, err := e.open(a)
	if err != nil {
		return Ciphertext{}, err
	}
	h := deriveHandle("cast", to, a.Handle[:], []byte{byte(to)})
	return e.seal(h, av&to.Max()), nil
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
