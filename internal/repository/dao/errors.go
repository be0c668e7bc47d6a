package dao

import "errors"

var (
	ErrRoundNotFound         = errors.New("round not found")
	ErrNoActiveRound         = errors.New("no active round exists")
	ErrRoundNotActive        = errors.New("round is not active")
	ErrRoundClosed           = errors.New("round already has winning numbers")
	ErrBoardNotFound         = errors.New("board not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerExists          = errors.New("a player with this email already exists")
	ErrInsufficientFunds     = errors.New("insufficient balance")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionNotPending = errors.New("transaction is not pending")
	ErrDuplicateReference    = errors.New("a transaction with this reference already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserEmailExists       = errors.New("a user with this email already exists")
)
