package ports

// NotificationKind distinguishes the alerts the session can raise.
type NotificationKind string

const (
	// NotificationNewOffer alerts the worker that a matching offer
	// appeared while online.
	NotificationNewOffer NotificationKind = "new_offer"

	// NotificationApproved alerts the worker that the requester confirmed
	// the assignment.
	NotificationApproved NotificationKind = "approved"

	// NotificationOrderLost tells the worker their active order was
	// withdrawn or reassigned. Recoverable notice, not an error.
	NotificationOrderLost NotificationKind = "order_lost"
)

// Notifier is the fire-and-forget alerting contract. Implementations
// must never block or fail the caller; delivery is best effort.
type Notifier interface {
	Notify(kind NotificationKind, title, detail string)
}
