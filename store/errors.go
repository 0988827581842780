// Package store owns all persistence for the rewards core. Point balances
// are mutated here and nowhere else; every accounting operation runs inside
// a single transaction.
package store

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrInvalidWallet     = errors.New("wallet address must be exactly 42 characters")
	ErrWalletRequired    = errors.New("wallet must be connected")
	ErrTaskCompleted     = errors.New("task already completed")
)

// Point awards. Balances only ever move by these through the store.
const (
	SignupBonus   = 500
	WalletBonus   = 100
	ReferralBonus = 250
)
