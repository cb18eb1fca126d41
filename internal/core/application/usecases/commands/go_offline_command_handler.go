package commands

import (
	"context"
)

// GoOfflineCommandHandler handles the worker going offline.
type GoOfflineCommandHandler struct {
	session OrderSession
}

// NewGoOfflineCommandHandler creates a handler for going offline.
func NewGoOfflineCommandHandler(session OrderSession) GoOfflineCommandHandler {
	return GoOfflineCommandHandler{
		session: session,
	}
}

// Handle processes the go-offline command.
func (h *GoOfflineCommandHandler) Handle(ctx context.Context, cmd GoOfflineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.session.GoOffline(ctx)
}
