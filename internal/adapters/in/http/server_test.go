package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket/internal/adapters/out/wire"
	"jobmarket/internal/core/application/usecases/commands"
	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/pkg/errs"
)

// stubApp implements both the command surface and the read views.
type stubApp struct {
	online  bool
	offered []*order.Order
	mine    []*order.Order
	history []*order.Order

	acceptErr   error
	rejectErr   error
	completeErr error
	onlineErr   error
	offlineErr  error

	acceptedIDs []kernel.UUID
}

func (a *stubApp) Offered() []*order.Order { return a.offered }
func (a *stubApp) Mine() []*order.Order    { return a.mine }
func (a *stubApp) History() []*order.Order { return a.history }
func (a *stubApp) Online() bool            { return a.online }

func (a *stubApp) Accept(_ context.Context, id kernel.UUID) error {
	a.acceptedIDs = append(a.acceptedIDs, id)
	return a.acceptErr
}
func (a *stubApp) Reject(context.Context, kernel.UUID) error   { return a.rejectErr }
func (a *stubApp) Complete(context.Context, kernel.UUID) error { return a.completeErr }
func (a *stubApp) GoOnline(context.Context, []string, kernel.PriceRange) error {
	return a.onlineErr
}
func (a *stubApp) GoOffline(context.Context) error { return a.offlineErr }

func newTestServer(app *stubApp) *echo.Echo {
	server := NewServer(
		app,
		commands.NewAcceptOrderCommandHandler(app),
		commands.NewRejectOrderCommandHandler(app),
		commands.NewCompleteOrderCommandHandler(app),
		commands.NewGoOnlineCommandHandler(app),
		commands.NewGoOfflineCommandHandler(app),
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func testOffer(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.NewPrice(250000)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "cat-construction", "Construction",
		"Tashkent, Chilonzor district", "Fix bathroom tiles", nil, price, time.Now())
	require.NoError(t, err)
	return o
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(&stubApp{})

	rec := doRequest(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_GetOfferedOrders(t *testing.T) {
	offer := testOffer(t)
	e := newTestServer(&stubApp{offered: []*order.Order{offer}})

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/offered", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var snapshots []wire.OrderSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshots))
	require.Len(t, snapshots, 1)
	assert.Equal(t, offer.ID().String(), snapshots[0].ID)
	assert.Equal(t, "offered", snapshots[0].Status)
	assert.Equal(t, int64(250000), snapshots[0].Price)
}

func TestServer_AcceptOrder(t *testing.T) {
	t.Run("should accept and return 204", func(t *testing.T) {
		app := &stubApp{}
		e := newTestServer(app)
		id := kernel.NewUUID()

		rec := doRequest(e, http.MethodPost, "/api/v1/orders/"+id.String()+"/accept", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.Len(t, app.acceptedIDs, 1)
		assert.Equal(t, id, app.acceptedIDs[0])
	})

	t.Run("should map a conflict to 409", func(t *testing.T) {
		app := &stubApp{acceptErr: errs.NewConflictError("another order is active")}
		e := newTestServer(app)

		rec := doRequest(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/accept", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should map not found to 404", func(t *testing.T) {
		id := kernel.NewUUID()
		app := &stubApp{acceptErr: errs.NewObjectNotFoundError("orderID", id)}
		e := newTestServer(app)

		rec := doRequest(e, http.MethodPost, "/api/v1/orders/"+id.String()+"/accept", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should map a transient backend failure to 502", func(t *testing.T) {
		app := &stubApp{acceptErr: errs.NewTransientError("accept order", context.DeadlineExceeded)}
		e := newTestServer(app)

		rec := doRequest(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/accept", "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("should reject a malformed id with 400", func(t *testing.T) {
		e := newTestServer(&stubApp{})

		rec := doRequest(e, http.MethodPost, "/api/v1/orders/not-a-uuid/accept", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CompleteOrder(t *testing.T) {
	t.Run("should map completing an unconfirmed order to 409", func(t *testing.T) {
		app := &stubApp{completeErr: errs.NewConflictError("accepted is not a valid status to complete")}
		e := newTestServer(app)

		rec := doRequest(e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/complete", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServer_Availability(t *testing.T) {
	t.Run("should go online with a valid configuration", func(t *testing.T) {
		e := newTestServer(&stubApp{})

		rec := doRequest(e, http.MethodPost, "/api/v1/availability/online",
			`{"categories":["cat-construction"],"min_price":200000,"max_price":300000}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body availabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Online)
	})

	t.Run("should reject an invalid price range with 400", func(t *testing.T) {
		e := newTestServer(&stubApp{})

		rec := doRequest(e, http.MethodPost, "/api/v1/availability/online",
			`{"categories":["cat-construction"],"min_price":100,"max_price":50}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject an empty category selection with 400", func(t *testing.T) {
		e := newTestServer(&stubApp{})

		rec := doRequest(e, http.MethodPost, "/api/v1/availability/online",
			`{"categories":[],"min_price":200000,"max_price":300000}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should map going online with an active order to 409", func(t *testing.T) {
		app := &stubApp{onlineErr: errs.NewConflictError("an order is active")}
		e := newTestServer(app)

		rec := doRequest(e, http.MethodPost, "/api/v1/availability/online",
			`{"categories":["cat-construction"],"min_price":200000,"max_price":300000}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should always go offline", func(t *testing.T) {
		e := newTestServer(&stubApp{online: true})

		rec := doRequest(e, http.MethodPost, "/api/v1/availability/offline", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body availabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Online)
	})

	t.Run("should report the current state", func(t *testing.T) {
		e := newTestServer(&stubApp{online: true})

		rec := doRequest(e, http.MethodGet, "/api/v1/availability", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body availabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Online)
	})
}
