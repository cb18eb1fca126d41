package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/core/domain/model/worker"
	"jobmarket/internal/core/domain/services"
	"jobmarket/internal/core/ports"
	"jobmarket/internal/pkg/errs"
)

// pendingAccept tracks an optimistic accept awaiting backend
// confirmation: when it was made and whether the worker was online at
// that moment, so a rollback can restore the previous availability.
type pendingAccept struct {
	at        time.Time
	wasOnline bool
}

// Session is the single logical owner of the worker's marketplace state:
// the order lifecycle views, the availability configuration and the
// reconciliation bookkeeping. Every mutation (user command, pull
// completion, push event, timer sweep) runs under one lock; backend
// calls are issued outside the lock and their results re-enter through
// it.
//
// There are no ambient globals: the session is constructed once and
// passed explicitly to the HTTP handlers, the jobs and the event-stream
// subscription.
type Session struct {
	mu sync.Mutex

	lifecycle    *lifecycle
	availability *worker.Availability
	matcher      services.OfferMatcher

	// pendingAccepts holds unconfirmed accepts keyed by order id
	pendingAccepts map[kernel.UUID]pendingAccept

	// pullGeneration invalidates in-flight pulls when availability
	// changes under them
	pullGeneration uint64

	gateway  ports.BackendGateway
	notifier ports.Notifier
	settings ports.SettingsRepository

	confirmTimeout time.Duration
	clock          func() time.Time
	logger         *slog.Logger
}

// NewSession creates a Session with no availability configured and empty
// lifecycle views. The worker starts offline; persisted settings are
// restored separately via RestoreSettings.
func NewSession(
	gateway ports.BackendGateway,
	notifier ports.Notifier,
	settings ports.SettingsRepository,
	confirmTimeout time.Duration,
	logger *slog.Logger,
) (*Session, error) {
	if gateway == nil {
		return nil, errs.NewValueIsRequiredError("gateway")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if settings == nil {
		return nil, errs.NewValueIsRequiredError("settings")
	}
	if confirmTimeout <= 0 {
		return nil, errs.NewValueIsInvalidError("confirmTimeout must be positive")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		lifecycle:      newLifecycle(),
		matcher:        services.NewOfferMatcher(),
		pendingAccepts: make(map[kernel.UUID]pendingAccept),
		gateway:        gateway,
		notifier:       notifier,
		settings:       settings,
		confirmTimeout: confirmTimeout,
		clock:          time.Now,
		logger:         logger.With("component", "session"),
	}, nil
}

// RestoreSettings loads the persisted matching configuration, if any,
// into an offline availability. A missing record is not an error: the
// worker simply has to configure categories on the first GoOnline.
func (s *Session) RestoreSettings(ctx context.Context) error {
	stored, err := s.settings.Load(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	availability, err := worker.NewAvailability(stored.Categories, stored.PriceRange)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.availability = availability
	s.mu.Unlock()
	return nil
}

// Accept optimistically takes an offered order: the order moves to mine
// as Accepted, the worker is forced offline, and the backend mutation is
// sent. A backend failure rolls the whole transition back.
//
// Guards: the id must be in the offered view and the worker must not
// already hold an active order.
func (s *Session) Accept(ctx context.Context, id kernel.UUID) error {
	s.mu.Lock()
	o, ok := s.lifecycle.offeredOrder(id)
	if !ok {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("orderID", id)
	}
	if active, exists := s.lifecycle.activeOrder(); exists {
		s.mu.Unlock()
		return errs.NewConflictError(
			"another order is already active: " + active.ID().String())
	}
	if err := o.Accept(); err != nil {
		s.mu.Unlock()
		return err
	}

	s.lifecycle.moveToMine(o)
	wasOnline := s.forceOffline()
	s.pendingAccepts[id] = pendingAccept{at: s.clock(), wasOnline: wasOnline}
	update := s.availabilitySnapshot()
	s.mu.Unlock()

	s.pushAvailability(ctx, update)

	snapshot, err := s.gateway.AcceptOrder(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.rollbackAccept(ctx, id)
		return err
	}

	s.logger.InfoContext(ctx, "order accepted", "orderID", id.String())
	s.reconcileSnapshot(ctx, snapshot)
	return nil
}

// Reject drops an offered order from the local view. Purely local: the
// backend is never told, and the offer reappears for other workers (or
// on the next session) untouched.
func (s *Session) Reject(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lifecycle.offeredOrder(id); !ok {
		return errs.NewObjectNotFoundError("orderID", id)
	}
	s.lifecycle.removeOffered(id)
	return nil
}

// Complete finishes the approved order: it moves to history as Completed
// with a completion timestamp, the backend is told, and the worker is
// put back online with the saved configuration. A backend failure rolls
// the order back to Approved in mine.
func (s *Session) Complete(ctx context.Context, id kernel.UUID) error {
	s.mu.Lock()
	o, ok := s.lifecycle.mineOrder(id)
	if !ok {
		s.mu.Unlock()
		return errs.NewObjectNotFoundError("orderID", id)
	}
	if err := o.Complete(s.clock()); err != nil {
		s.mu.Unlock()
		return err
	}
	s.lifecycle.moveToHistory(o)
	s.mu.Unlock()

	snapshot, err := s.gateway.CompleteOrder(ctx, id)

	s.mu.Lock()
	if err != nil {
		if rbErr := o.ReopenForRollback(); rbErr != nil {
			s.logger.ErrorContext(ctx, "completion rollback failed",
				"orderID", id.String(), "error", rbErr)
			s.mu.Unlock()
			return err
		}
		s.lifecycle.moveToMineFromHistory(o)
		// a go-online may have slipped in while the order sat in
		// history; the rolled-back order is active again, so the worker
		// must not stay online
		wasOnline := s.forceOffline()
		update := s.availabilitySnapshot()
		s.mu.Unlock()

		if wasOnline {
			s.pushAvailability(ctx, update)
		}
		return err
	}

	s.reconcileSnapshot(ctx, snapshot)
	update := s.restoreOnline()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "order completed", "orderID", id.String())
	s.pushAvailability(ctx, update)
	return nil
}

// Offered returns the currently surfaced offers, newest first.
func (s *Session) Offered() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle.offeredView()
}

// Mine returns the worker's current orders, newest first.
func (s *Session) Mine() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle.mineView()
}

// History returns the terminal orders, newest first.
func (s *Session) History() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle.historyView()
}

// rollbackAccept undoes an optimistic accept whose backend mutation
// failed or was never confirmed: the order returns to the offered view
// and the availability the worker had before accepting is restored.
// Caller must hold the lock.
func (s *Session) rollbackAccept(ctx context.Context, id kernel.UUID) {
	pending, ok := s.pendingAccepts[id]
	if !ok {
		return
	}
	delete(s.pendingAccepts, id)

	o, ok := s.lifecycle.mineOrder(id)
	if !ok {
		return
	}
	if err := o.Reoffer(); err != nil {
		// already confirmed or cancelled concurrently; nothing to undo
		return
	}
	s.lifecycle.moveToOffered(o)

	if pending.wasOnline && s.availability != nil {
		s.availability.GoOnline()
		s.pullGeneration++
		go s.pushAvailability(context.WithoutCancel(ctx), s.availabilitySnapshot())
	}
	s.logger.InfoContext(ctx, "accept rolled back", "orderID", id.String())
}
