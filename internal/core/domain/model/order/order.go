package order

import (
	"errors"
	"time"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents one unit of work in the marketplace. It is the
// aggregate root that manages the order lifecycle from the first time it
// is observed (via pull or push) through acceptance, approval and
// completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and category reference
//   - Offer price must be positive
//   - Requester contact fields are populated if and only if the status
//     is Approved or Completed
//   - Status transitions follow the rules defined on Status
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the backend-assigned identifier (a locally generated
	// placeholder only in simulated mode before first confirmation)
	id kernel.UUID

	// categoryID references the service category the order belongs to
	categoryID string

	// categoryName is the display name of the category
	categoryName string

	// location is the free-text job location
	location string

	// description is the free-text job description
	description string

	// images holds the ordered image references attached by the requester
	images []string

	// price is the offered price, matched against the worker's range
	price kernel.Price

	// requesterName is nil until acceptance is confirmed by the backend
	requesterName *string

	// requesterPhone is nil until acceptance is confirmed by the backend
	requesterPhone *string

	// createdAt is the backend creation timestamp
	createdAt time.Time

	// completedAt is stamped when the order reaches Completed
	completedAt *time.Time

	// status is the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an Order in the initial Offered status.
// This is the path for orders first observed as offers; reconstruction
// from snapshots goes through RestoreOrder.
func NewOrder(
	id kernel.UUID,
	categoryID string,
	categoryName string,
	location string,
	description string,
	images []string,
	price kernel.Price,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Offered,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCategory(categoryID, categoryName),
		o.setLocation(location),
		o.setPrice(price),
	); err != nil {
		return nil, err
	}

	o.description = description
	o.images = append([]string(nil), images...)
	o.createdAt = createdAt
	return o, nil
}

// RestoreOrder reconstructs an Order from a backend snapshot or from
// persistence, in any valid status. It enforces the contact-field
// invariant: requester name and phone must be present exactly when the
// status is Approved or Completed.
func RestoreOrder(
	id kernel.UUID,
	categoryID string,
	categoryName string,
	location string,
	description string,
	images []string,
	price kernel.Price,
	status Status,
	requesterName *string,
	requesterPhone *string,
	createdAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, categoryID, categoryName, location, description, images, price, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	hasContacts := requesterName != nil && requesterPhone != nil
	confirmed := status == Approved || status == Completed
	if hasContacts != confirmed {
		return nil, errs.NewValueIsInvalidError(
			"requester contacts must be present exactly when the order is approved or completed")
	}

	o.status = status
	o.requesterName = requesterName
	o.requesterPhone = requesterPhone
	o.completedAt = completedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CategoryID returns the order's category reference.
func (o *Order) CategoryID() string {
	return o.categoryID
}

// CategoryName returns the category display name.
func (o *Order) CategoryName() string {
	return o.categoryName
}

// Location returns the free-text job location.
func (o *Order) Location() string {
	return o.location
}

// Description returns the free-text job description.
func (o *Order) Description() string {
	return o.description
}

// Images returns a copy of the ordered image references.
func (o *Order) Images() []string {
	return append([]string(nil), o.images...)
}

// Price returns the offered price.
func (o *Order) Price() kernel.Price {
	return o.price
}

// RequesterName returns the requester display name.
// Nil until acceptance is confirmed by the backend.
func (o *Order) RequesterName() *string {
	return o.requesterName
}

// RequesterPhone returns the requester phone number.
// Nil until acceptance is confirmed by the backend.
func (o *Order) RequesterPhone() *string {
	return o.requesterPhone
}

// CreatedAt returns the backend creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns the completion timestamp, nil while uncompleted.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Accept optimistically transitions the order to Accepted.
// Valid only from Offered; the caller is responsible for sending the
// matching backend mutation and reconciling (or rolling back) on its
// result.
func (o *Order) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Confirm applies the authoritative backend confirmation, transitioning
// the order to Approved and populating the requester contact fields.
// Never triggered by direct user action.
func (o *Order) Confirm(requesterName, requesterPhone string) error {
	if requesterName == "" {
		return errs.NewValueIsRequiredError("requesterName")
	}
	if requesterPhone == "" {
		return errs.NewValueIsRequiredError("requesterPhone")
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.requesterName = &requesterName
	o.requesterPhone = &requesterPhone
	return nil
}

// Complete transitions the order to Completed and stamps the completion
// timestamp. Valid only from Approved.
func (o *Order) Complete(at time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.completedAt = &at
	return nil
}

// Cancel transitions the order to Rejected from any non-terminal status.
// Used for local rejection and external cancellation alike.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reoffer rolls an unconfirmed accept back to Offered, clearing the
// completion timestamp if one was speculatively set. This is the rollback
// edge for optimistic transitions that the backend rejected or that timed
// out waiting for confirmation.
func (o *Order) Reoffer() error {
	newStatus, err := o.status.Reoffer()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ReopenForRollback undoes an optimistic completion: the order returns to
// Approved and the completion timestamp is cleared. Valid only from
// Completed with contacts present.
func (o *Order) ReopenForRollback() error {
	if o.status != Completed {
		return errs.NewConflictError("only a completed order can be reopened for rollback")
	}

	o.status = Approved
	o.completedAt = nil
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCategory validates and sets the category reference.
func (o *Order) setCategory(categoryID, categoryName string) error {
	if categoryID == "" {
		return errs.NewValueIsRequiredError("categoryID")
	}
	o.categoryID = categoryID
	o.categoryName = categoryName
	return nil
}

// setLocation validates and sets the free-text location.
func (o *Order) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	o.location = location
	return nil
}

// setPrice validates and sets the offered price.
func (o *Order) setPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.price = price
	return nil
}
