package commands

import (
	"errors"

	"jobmarket/internal/pkg/guard"
)

var ErrGoOfflineCommandIsNotConstructed = errors.New(
	"GoOfflineCommand must be created via NewGoOfflineCommand constructor",
)

// GoOfflineCommand represents the worker disabling offer surfacing.
// Going offline always succeeds locally.
type GoOfflineCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewGoOfflineCommand creates a command to put the worker offline.
func NewGoOfflineCommand() (GoOfflineCommand, error) {
	return GoOfflineCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrGoOfflineCommandIsNotConstructed if validation fails.
func (c GoOfflineCommand) Validate() error {
	return c.guard.Validate(ErrGoOfflineCommandIsNotConstructed)
}
