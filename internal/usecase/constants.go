package usecase

import "time"

const (
	// DefaultSendDescription is used when a send carries no note.
	DefaultSendDescription = "Money sent"

	// DefaultAddMoneyDescription is used when the funding source is unknown.
	DefaultAddMoneyDescription = "Added Money"

	// DefaultLockTimeout bounds how long a mutation waits for the per-user lock.
	DefaultLockTimeout = 5 * time.Second
)

// Operation names used in metrics and logs.
const (
	OpSend     = "send"
	OpAddMoney = "add_money"
	OpRequest  = "request_money"
)
