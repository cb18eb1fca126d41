package wire

import (
	"time"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
)

// OrderSnapshot is the JSON shape of an order as the backend reports it,
// shared by the HTTP gateway, the event stream consumer and the
// simulated gateway.
type OrderSnapshot struct {
	ID             string     `json:"id"`
	CategoryID     string     `json:"category_id"`
	CategoryName   string     `json:"category_name"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	Images         []string   `json:"images,omitempty"`
	Price          int64      `json:"price"`
	RequesterName  *string    `json:"requester_name,omitempty"`
	RequesterPhone *string    `json:"requester_phone,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// ToDomain reconstructs the order aggregate from the snapshot.
// All aggregate invariants apply, including the contact-field rule.
func (s OrderSnapshot) ToDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(s.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(s.Status)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewPrice(s.Price)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, s.CategoryID, s.CategoryName, s.Location,
		s.Description, s.Images, price, status,
		s.RequesterName, s.RequesterPhone, s.CreatedAt, s.CompletedAt)
}

// FromDomain projects the order aggregate into its wire shape.
func FromDomain(o *order.Order) OrderSnapshot {
	return OrderSnapshot{
		ID:             o.ID().String(),
		CategoryID:     o.CategoryID(),
		CategoryName:   o.CategoryName(),
		Location:       o.Location(),
		Description:    o.Description(),
		Images:         o.Images(),
		Price:          o.Price().Amount(),
		RequesterName:  o.RequesterName(),
		RequesterPhone: o.RequesterPhone(),
		Status:         o.Status().String(),
		CreatedAt:      o.CreatedAt(),
		CompletedAt:    o.CompletedAt(),
	}
}
