package session

import (
	"slices"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
)

// lifecycle is the canonical owner of every order known to the session,
// partitioned into three disjoint views keyed by order id:
//
//   - offered: orders visible to the worker but not committed to anyone
//   - mine:    orders this worker holds (at most one active at a time)
//   - history: terminal orders and completed work
//
// An order id lives in exactly one view at a time. lifecycle is not safe
// for concurrent use; the session serializes all access through its lock.
type lifecycle struct {
	offered map[kernel.UUID]*order.Order
	mine    map[kernel.UUID]*order.Order
	history map[kernel.UUID]*order.Order
}

func newLifecycle() *lifecycle {
	return &lifecycle{
		offered: make(map[kernel.UUID]*order.Order),
		mine:    make(map[kernel.UUID]*order.Order),
		history: make(map[kernel.UUID]*order.Order),
	}
}

// offeredOrder looks up an order in the offered view.
func (l *lifecycle) offeredOrder(id kernel.UUID) (*order.Order, bool) {
	o, ok := l.offered[id]
	return o, ok
}

// mineOrder looks up an order in the mine view.
func (l *lifecycle) mineOrder(id kernel.UUID) (*order.Order, bool) {
	o, ok := l.mine[id]
	return o, ok
}

// activeOrder returns the single active order (Accepted or Approved) if
// one exists.
func (l *lifecycle) activeOrder() (*order.Order, bool) {
	for _, o := range l.mine {
		if o.Status().IsActive() {
			return o, true
		}
	}
	return nil, false
}

// hasActiveOrder reports whether the worker currently holds an active
// order.
func (l *lifecycle) hasActiveOrder() bool {
	_, ok := l.activeOrder()
	return ok
}

// statusOf returns the recorded status of an order in any view.
func (l *lifecycle) statusOf(id kernel.UUID) (order.Status, bool) {
	if o, ok := l.mine[id]; ok {
		return o.Status(), true
	}
	if o, ok := l.history[id]; ok {
		return o.Status(), true
	}
	if o, ok := l.offered[id]; ok {
		return o.Status(), true
	}
	return order.Unknown, false
}

// knows reports whether the order id is present in any view.
func (l *lifecycle) knows(id kernel.UUID) bool {
	_, ok := l.statusOf(id)
	return ok
}

// addOffered inserts an order into the offered view. Ids already present
// in mine or history are ignored so an order never occupies two views.
func (l *lifecycle) addOffered(o *order.Order) {
	id := o.ID()
	if _, ok := l.mine[id]; ok {
		return
	}
	if _, ok := l.history[id]; ok {
		return
	}
	l.offered[id] = o
}

// removeOffered drops an order from the offered view.
func (l *lifecycle) removeOffered(id kernel.UUID) {
	delete(l.offered, id)
}

// replaceOffered rebuilds the offered view wholesale from a pull result,
// keeping ids in mine and history out of it.
func (l *lifecycle) replaceOffered(orders []*order.Order) {
	l.offered = make(map[kernel.UUID]*order.Order, len(orders))
	for _, o := range orders {
		l.addOffered(o)
	}
}

// clearOffered empties the offered view. Used when the worker goes
// offline: stale offers must not be surfaced.
func (l *lifecycle) clearOffered() {
	l.offered = make(map[kernel.UUID]*order.Order)
}

// moveToMine transfers an order from the offered view into mine.
func (l *lifecycle) moveToMine(o *order.Order) {
	id := o.ID()
	delete(l.offered, id)
	l.mine[id] = o
}

// moveToOffered transfers an order from mine back into the offered view.
// This is the rollback path for optimistic accepts.
func (l *lifecycle) moveToOffered(o *order.Order) {
	id := o.ID()
	delete(l.mine, id)
	l.offered[id] = o
}

// moveToHistory transfers an order from mine (or offered) into history.
func (l *lifecycle) moveToHistory(o *order.Order) {
	id := o.ID()
	delete(l.mine, id)
	delete(l.offered, id)
	l.history[id] = o
}

// moveToMineFromHistory transfers an order from history back into mine.
// This is the rollback path for optimistic completions.
func (l *lifecycle) moveToMineFromHistory(o *order.Order) {
	id := o.ID()
	delete(l.history, id)
	l.mine[id] = o
}

// offeredView returns the offered orders, newest first.
func (l *lifecycle) offeredView() []*order.Order {
	return sortedByCreation(l.offered)
}

// mineView returns the worker's orders, newest first.
func (l *lifecycle) mineView() []*order.Order {
	return sortedByCreation(l.mine)
}

// historyView returns the terminal orders, newest first.
func (l *lifecycle) historyView() []*order.Order {
	return sortedByCreation(l.history)
}

func sortedByCreation(view map[kernel.UUID]*order.Order) []*order.Order {
	orders := make([]*order.Order, 0, len(view))
	for _, o := range view {
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b *order.Order) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		// stable tie-break for equal timestamps
		if a.ID().String() < b.ID().String() {
			return -1
		}
		return 1
	})
	return orders
}
