package commands

import (
	"context"
)

// RejectOrderCommandHandler handles local order dismissal.
type RejectOrderCommandHandler struct {
	session OrderSession
}

// NewRejectOrderCommandHandler creates a handler for order dismissal.
func NewRejectOrderCommandHandler(session OrderSession) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		session: session,
	}
}

// Handle processes the reject command.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.session.Reject(ctx, cmd.OrderID())
}
