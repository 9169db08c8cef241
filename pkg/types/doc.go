// Package types defines the entity types, ciphertext handle representation,
// and standard error types for the QuantumHabit confidential ledger.
// See docs/ARCHITECTURE.md § Data Model.
package types
