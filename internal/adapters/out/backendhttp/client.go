package backendhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"jobmarket/internal/adapters/out/wire"
	"jobmarket/internal/core/domain/model/kernel"
	"jobmarket/internal/core/domain/model/order"
	"jobmarket/internal/core/ports"
	"jobmarket/internal/pkg/errs"
)

var _ ports.BackendGateway = (*Client)(nil)

// Client is the HTTP implementation of the backend gateway.
// Transport failures map onto the error taxonomy: 409 responses become
// ConflictError, 404 becomes ObjectNotFoundError, and network errors or
// 5xx responses become TransientError so callers can retry.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// availabilityRequest is the JSON body of the availability update.
type availabilityRequest struct {
	Online     bool     `json:"online"`
	Categories []string `json:"categories"`
	MinPrice   int64    `json:"min_price"`
	MaxPrice   int64    `json:"max_price"`
}

// NewClient creates a backend gateway client for the given absolute base
// URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, errs.NewValueIsInvalidError("backend url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "backend-gateway"),
	}, nil
}

// ListOfferedOrders fetches the offered orders for the given categories.
func (c *Client) ListOfferedOrders(ctx context.Context, categories []string) ([]*order.Order, error) {
	endpoint := c.endpoint("/api/v1/orders")
	query := endpoint.Query()
	query.Set("status", order.Offered.String())
	if len(categories) > 0 {
		query.Set("categories", strings.Join(categories, ","))
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewTransientError("list offered orders", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("list offered orders", "", resp)
	}

	var snapshots []wire.OrderSnapshot
	if err = json.NewDecoder(resp.Body).Decode(&snapshots); err != nil {
		return nil, errs.NewTransientError("list offered orders", err)
	}

	orders := make([]*order.Order, 0, len(snapshots))
	for _, snapshot := range snapshots {
		o, err := snapshot.ToDomain()
		if err != nil {
			c.logger.WarnContext(ctx, "invalid order snapshot skipped",
				"orderID", snapshot.ID, "error", err)
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// AcceptOrder asks the backend to assign the order to this worker.
func (c *Client) AcceptOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return c.mutateOrder(ctx, "accept order", id, "accept")
}

// CompleteOrder reports the order finished.
func (c *Client) CompleteOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return c.mutateOrder(ctx, "complete order", id, "complete")
}

// UpdateAvailability publishes the worker's availability configuration.
func (c *Client) UpdateAvailability(ctx context.Context, online bool, categories []string, priceRange kernel.PriceRange) error {
	body, err := json.Marshal(availabilityRequest{
		Online:     online,
		Categories: categories,
		MinPrice:   priceRange.Min().Amount(),
		MaxPrice:   priceRange.Max().Amount(),
	})
	if err != nil {
		return err
	}

	endpoint := c.endpoint("/api/v1/workers/me/availability")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewTransientError("update availability", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.statusError("update availability", "", resp)
	}
	return nil
}

func (c *Client) mutateOrder(ctx context.Context, op string, id kernel.UUID, action string) (*order.Order, error) {
	endpoint := c.endpoint("/api/v1/orders/", id.String(), action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewTransientError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(op, id.String(), resp)
	}

	var snapshot wire.OrderSnapshot
	if err = json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, errs.NewTransientError(op, err)
	}
	return snapshot.ToDomain()
}

func (c *Client) endpoint(parts ...string) url.URL {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{endpoint.Path}, parts...)...)
	return endpoint
}

func (c *Client) statusError(op string, id string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("backend request failed",
		"op", op, "status", resp.StatusCode, "body", string(body))

	switch {
	case resp.StatusCode == http.StatusConflict:
		return errs.NewConflictError(op + " rejected by backend")
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError("orderID", id)
	case resp.StatusCode == http.StatusBadRequest:
		return errs.NewValueIsInvalidErrorWithCause(op,
			fmt.Errorf("backend response: %s", resp.Status))
	default:
		return errs.NewTransientError(op, fmt.Errorf("backend response: %s", resp.Status))
	}
}
