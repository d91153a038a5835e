package qlearn

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when a move is rejected by the Rules.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidParams is returned when a configuration option is missing or malformed.
	ErrInvalidParams = errors.New("invalid params")
)
