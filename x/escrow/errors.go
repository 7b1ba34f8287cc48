package escrow

import (
	"github.com/iov-one/custody/errors"
)

// escrow takes 1010-1020
var (
	ErrUnauthorizedOperator      = errors.Register(1010, "unauthorized operator")
	ErrUnauthorizedProgram       = errors.Register(1011, "unauthorized program")
	ErrAccountAlreadyInitialized = errors.Register(1012, "account already initialized")
	ErrTokenTransferFailed       = errors.Register(1013, "token transfer failed")
	ErrAuthorityTransferFailed   = errors.Register(1014, "authority transfer failed")
)

// ErrInvalidAmount is returned for zero value distributions.
var ErrInvalidAmount = errors.ErrAmount
