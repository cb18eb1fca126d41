package commands

import (
	"context"
)

// AcceptOrderCommandHandler handles order acceptance. The session moves
// the order into the worker's slot, forces availability offline and
// sends the backend mutation; a failed mutation rolls everything back.
type AcceptOrderCommandHandler struct {
	session OrderSession
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(session OrderSession) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		session: session,
	}
}

// Handle processes the accept command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.session.Accept(ctx, cmd.OrderID())
}
