package commands

import (
	"errors"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents the worker dismissing an offered order.
// Rejection is purely local: the backend is never told and the offer
// stays available to other workers.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command to dismiss an offered order.
func NewRejectOrderCommand(orderID kernel.UUID) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RejectOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectOrderCommandIsNotConstructed if validation fails.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to dismiss.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RejectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
