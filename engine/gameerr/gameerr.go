// Package gameerr defines the recoverable game conditions reported to the
// player. None of them is fatal; callers match kinds with errors.Is.
package gameerr

import (
	"errors"
	"fmt"
)

// Kinds.
var (
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrHouseFull         = errors.New("house full")
	ErrNoSupply          = errors.New("no supply")
	ErrNoActivePlayer    = errors.New("no active player")
	ErrSaveNotFound      = errors.New("save not found")
	ErrAlreadyCompleted  = errors.New("already completed")
)

// Error is a kind plus the message shown to the player.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New returns an *Error of the given kind with a formatted message.
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Funds reports a failed payment.
func Funds(need, have int) error {
	return New(ErrInsufficientFunds, "Not enough money! Need $%d, have $%d", need, have)
}
