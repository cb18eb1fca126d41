// Package notifier provides the log-backed notification adapter.
// Worker alerts (new offers, approvals, lost orders) surface as
// structured log records; delivery mechanics beyond that are out of
// scope for the session core.
package notifier

import (
	"log/slog"

	"jobmarket/internal/core/ports"
)

var _ ports.Notifier = (*SlogNotifier)(nil)

// SlogNotifier writes notifications to a structured logger. Notify never
// fails and never blocks.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier on top of the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{
		logger: logger.With("component", "notifier"),
	}
}

// Notify records the notification.
func (n *SlogNotifier) Notify(kind ports.NotificationKind, title, detail string) {
	n.logger.Info("notification",
		"kind", string(kind), "title", title, "detail", detail)
}
