// Package http exposes the worker-facing HTTP API: lifecycle views,
// order actions and availability toggling.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"jobmarket/internal/adapters/out/wire"
	"jobmarket/internal/core/application/usecases/commands"
	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/pkg/errs"
)

// OrderViews is the read surface the server renders. Implemented by the
// application session.
type OrderViews interface {
	Offered() []*order.Order
	Mine() []*order.Order
	History() []*order.Order
	Online() bool
}

// Server coordinates between HTTP handlers and the application use
// cases.
type Server struct {
	views OrderViews

	acceptHandler    commands.AcceptOrderCommandHandler
	rejectHandler    commands.RejectOrderCommandHandler
	completeHandler  commands.CompleteOrderCommandHandler
	goOnlineHandler  commands.GoOnlineCommandHandler
	goOfflineHandler commands.GoOfflineCommandHandler
}

// Error is the JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// availabilityRequest is the JSON body of the go-online request.
type availabilityRequest struct {
	Categories []string `json:"categories"`
	MinPrice   int64    `json:"min_price"`
	MaxPrice   int64    `json:"max_price"`
}

// availabilityResponse reports the current availability state.
type availabilityResponse struct {
	Online bool `json:"online"`
}

// NewServer creates the HTTP server over the given views and command
// handlers.
func NewServer(
	views OrderViews,
	acceptHandler commands.AcceptOrderCommandHandler,
	rejectHandler commands.RejectOrderCommandHandler,
	completeHandler commands.CompleteOrderCommandHandler,
	goOnlineHandler commands.GoOnlineCommandHandler,
	goOfflineHandler commands.GoOfflineCommandHandler,
) *Server {
	return &Server{
		views:            views,
		acceptHandler:    acceptHandler,
		rejectHandler:    rejectHandler,
		completeHandler:  completeHandler,
		goOnlineHandler:  goOnlineHandler,
		goOfflineHandler: goOfflineHandler,
	}
}

// RegisterRoutes binds all API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders/offered", s.GetOfferedOrders)
	api.GET("/orders/mine", s.GetMyOrders)
	api.GET("/orders/history", s.GetOrderHistory)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/reject", s.RejectOrder)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.GET("/availability", s.GetAvailability)
	api.POST("/availability/online", s.GoOnline)
	api.POST("/availability/offline", s.GoOffline)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// GetOfferedOrders handles GET /api/v1/orders/offered.
func (s *Server) GetOfferedOrders(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toSnapshots(s.views.Offered()))
}

// GetMyOrders handles GET /api/v1/orders/mine.
func (s *Server) GetMyOrders(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toSnapshots(s.views.Mine()))
}

// GetOrderHistory handles GET /api/v1/orders/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, toSnapshots(s.views.History()))
}

// AcceptOrder handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAcceptOrderCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.acceptHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRejectOrderCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.rejectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCompleteOrderCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.completeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailability handles GET /api/v1/availability.
func (s *Server) GetAvailability(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, availabilityResponse{Online: s.views.Online()})
}

// GoOnline handles POST /api/v1/availability/online.
func (s *Server) GoOnline(ctx echo.Context) error {
	var body availabilityRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	minPrice, err := kernel.NewPrice(body.MinPrice)
	if err != nil {
		return writeError(ctx, err)
	}
	maxPrice, err := kernel.NewPrice(body.MaxPrice)
	if err != nil {
		return writeError(ctx, err)
	}
	priceRange, err := kernel.NewPriceRange(minPrice, maxPrice)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewGoOnlineCommand(body.Categories, priceRange)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.goOnlineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, availabilityResponse{Online: true})
}

// GoOffline handles POST /api/v1/availability/offline.
func (s *Server) GoOffline(ctx echo.Context) error {
	cmd, err := commands.NewGoOfflineCommand()
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.goOfflineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, availabilityResponse{Online: false})
}

func toSnapshots(orders []*order.Order) []wire.OrderSnapshot {
	snapshots := make([]wire.OrderSnapshot, 0, len(orders))
	for _, o := range orders {
		snapshots = append(snapshots, wire.FromDomain(o))
	}
	return snapshots
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps the error taxonomy onto HTTP status codes:
// conflicts are 409, unknown objects 404, invalid configuration 400 and
// transient backend failures 502.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrCategoriesAreRequired):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrTransient):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
