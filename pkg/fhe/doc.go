// Package fhe implements the ciphertext handle layer: content-addressed
// references to encrypted values and the homomorphic primitives the ledger
// computes with (add, compare, select, clamp). Handles are derived purely
// from the producing operation and its operands, so re-evaluating an
// unchanged computation always yields bit-identical handles. Plaintext is
// reachable only through Engine.Reveal, which the decryption relay calls
// after an ACL check.
// See docs/ARCHITECTURE.md § Ciphertext Handle Layer.
package fhe
