package commands

import (
	"context"
)

// CompleteOrderCommandHandler handles order completion. The session
// stamps the completion time, archives the order and puts the worker
// back online with the saved configuration.
type CompleteOrderCommandHandler struct {
	session OrderSession
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(session OrderSession) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		session: session,
	}
}

// Handle processes the complete command.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.session.Complete(ctx, cmd.OrderID())
}
