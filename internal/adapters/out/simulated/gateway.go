// Package simulated provides an in-memory backend for demo runs without
// a live marketplace: pulls synthesize plausible offers, accepts confirm
// themselves after a short delay, and confirmations arrive through the
// same event-stream contract the real push adapter uses.
package simulated

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/core/ports"
	"jobmarket/internal/pkg/errs"
)

var (
	_ ports.BackendGateway = (*Gateway)(nil)
	_ ports.EventStream    = (*Gateway)(nil)
)

const (
	requesterName  = "Alisher Karimov"
	requesterPhone = "+998901234567"

	offerMinPrice = 200000
	offerMaxPrice = 300000
)

var categoryNames = map[string]string{
	"cat-construction": "Construction",
	"cat-plumbing":     "Plumbing",
	"cat-electrics":    "Electrics",
	"cat-cleaning":     "Cleaning",
}

var offerLocations = []string{
	"Tashkent, Chilonzor district",
	"Tashkent, Yunusabad district",
	"Tashkent, Mirzo Ulugbek district",
	"Tashkent, Sergeli district",
}

var offerDescriptions = []string{
	"Fix bathroom tiles",
	"Install kitchen sink",
	"Replace wiring in two rooms",
	"Deep clean a three-room apartment",
}

// Gateway is the in-memory gateway and event stream. Offers carry
// locally minted placeholder ids; an accepted order self-confirms after
// confirmDelay with fixed requester contacts.
type Gateway struct {
	mu sync.Mutex

	offers   map[kernel.UUID]*order.Order
	accepted map[kernel.UUID]*order.Order

	handlers map[int]func(ports.OrderEvent)
	nextSub  int

	confirmDelay time.Duration
	rand         *rand.Rand
	clock        func() time.Time
	logger       *slog.Logger
}

// NewGateway creates a simulated gateway. The seed makes offer
// generation reproducible.
func NewGateway(confirmDelay time.Duration, seed int64, logger *slog.Logger) *Gateway {
	if confirmDelay <= 0 {
		confirmDelay = 3 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Gateway{
		offers:       make(map[kernel.UUID]*order.Order),
		accepted:     make(map[kernel.UUID]*order.Order),
		handlers:     make(map[int]func(ports.OrderEvent)),
		confirmDelay: confirmDelay,
		rand:         rand.New(rand.NewSource(seed)), //nolint:gosec //demo data only
		clock:        time.Now,
		logger:       logger.With("component", "simulated-gateway"),
	}
}

// ListOfferedOrders synthesizes a fresh batch of offers in the requested
// categories alongside any previously generated, still unaccepted ones.
func (g *Gateway) ListOfferedOrders(_ context.Context, categories []string) ([]*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for range 1 + g.rand.Intn(2) {
		o, err := g.generateOffer(categories)
		if err != nil {
			continue
		}
		g.offers[o.ID()] = o
	}

	listing := make([]*order.Order, 0, len(g.offers))
	for _, o := range g.offers {
		listing = append(listing, o)
	}
	return listing, nil
}

// AcceptOrder assigns a previously listed offer and schedules the
// requester confirmation.
func (g *Gateway) AcceptOrder(_ context.Context, id kernel.UUID) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	o, ok := g.offers[id]
	if !ok {
		if _, taken := g.accepted[id]; taken {
			return nil, errs.NewConflictError("order already assigned")
		}
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}

	delete(g.offers, id)
	g.accepted[id] = o

	time.AfterFunc(g.confirmDelay, func() { g.confirm(id) })
	return g.snapshot(o, order.Accepted, false, nil)
}

// CompleteOrder finishes an accepted order.
func (g *Gateway) CompleteOrder(_ context.Context, id kernel.UUID) (*order.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	o, ok := g.accepted[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	delete(g.accepted, id)

	completedAt := g.clock()
	return g.snapshot(o, order.Completed, true, &completedAt)
}

// UpdateAvailability only logs: there is no backend to converge.
func (g *Gateway) UpdateAvailability(ctx context.Context, online bool, categories []string, _ kernel.PriceRange) error {
	g.logger.InfoContext(ctx, "availability updated",
		"online", online, "categories", categories)
	return nil
}

// Subscribe registers a handler for confirmation events.
func (g *Gateway) Subscribe(_ context.Context, handler func(ports.OrderEvent)) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sub := g.nextSub
	g.nextSub++
	g.handlers[sub] = handler

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.handlers, sub)
	}, nil
}

// confirm emits the requester confirmation for an accepted order.
func (g *Gateway) confirm(id kernel.UUID) {
	g.mu.Lock()
	o, ok := g.accepted[id]
	if !ok {
		g.mu.Unlock()
		return
	}

	snapshot, err := g.snapshot(o, order.Approved, true, nil)
	handlers := make([]func(ports.OrderEvent), 0, len(g.handlers))
	for _, handler := range g.handlers {
		handlers = append(handlers, handler)
	}
	g.mu.Unlock()

	if err != nil {
		g.logger.Error("confirmation snapshot failed", "orderID", id.String(), "error", err)
		return
	}

	for _, handler := range handlers {
		handler(ports.OrderEvent{Kind: ports.EventUpdated, Order: snapshot})
	}
}

// generateOffer mints one offer in a random requested category.
// Caller must hold the lock.
func (g *Gateway) generateOffer(categories []string) (*order.Order, error) {
	if len(categories) == 0 {
		return nil, errs.NewValueIsRequiredError("categories")
	}

	categoryID := categories[g.rand.Intn(len(categories))]
	categoryName, ok := categoryNames[categoryID]
	if !ok {
		categoryName = categoryID
	}

	price, err := kernel.NewPrice(offerMinPrice + g.rand.Int63n(offerMaxPrice-offerMinPrice+1))
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		kernel.NewUUID(),
		categoryID,
		categoryName,
		offerLocations[g.rand.Intn(len(offerLocations))],
		offerDescriptions[g.rand.Intn(len(offerDescriptions))],
		nil,
		price,
		g.clock(),
	)
}

// snapshot rebuilds an independent aggregate in the reported status so
// the session never shares mutable state with the gateway.
func (g *Gateway) snapshot(o *order.Order, status order.Status, withContacts bool, completedAt *time.Time) (*order.Order, error) {
	var name, phone *string
	if withContacts {
		n, p := requesterName, requesterPhone
		name, phone = &n, &p
	}

	return order.RestoreOrder(o.ID(), o.CategoryID(), o.CategoryName(),
		o.Location(), o.Description(), o.Images(), o.Price(), status,
		name, phone, o.CreatedAt(), completedAt)
}
