package types

import "errors"

// Ledger operation errors. Every engine operation fails atomically with one
// of these; none are retried internally.
var (
	ErrNotFound            = errors.New("entity not found")
	ErrNotOwner            = errors.New("caller is not the habit owner")
	ErrAlreadyClaimed      = errors.New("reward already claimed")
	ErrNotEligible         = errors.New("reward threshold not met")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedProtocol = errors.New("unsupported encryption protocol")
)

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Relay errors.
var (
	ErrNotAuthorized = errors.New("account not authorized for handle")
)
