package commands

import (
	"context"
)

// GoOnlineCommandHandler handles the worker going online.
type GoOnlineCommandHandler struct {
	session OrderSession
}

// NewGoOnlineCommandHandler creates a handler for going online.
func NewGoOnlineCommandHandler(session OrderSession) GoOnlineCommandHandler {
	return GoOnlineCommandHandler{
		session: session,
	}
}

// Handle processes the go-online command.
func (h *GoOnlineCommandHandler) Handle(ctx context.Context, cmd GoOnlineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.session.GoOnline(ctx, cmd.Categories(), cmd.PriceRange())
}
