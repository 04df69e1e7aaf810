package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

const maxTicketSize = 10 << 20

var _ ports.OrderAPI = (*Client)(nil)

// CreateOrder turns the remote cart into an order and returns its id.
func (c *Client) CreateOrder(ctx context.Context, cred domain.Credential) (string, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/api/pedidos", cred, nil, &resp); err != nil {
		return "", err
	}
	id := resp.orderID()
	if id == "" {
		return "", fmt.Errorf("create order: %w: response carried no order id", domain.ErrBackendUnavailable)
	}
	return id, nil
}

// DownloadTicket fetches the PDF ticket for orderID.
func (c *Client) DownloadTicket(ctx context.Context, cred domain.Credential, orderID string) (domain.Ticket, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/pedidos/"+url.PathEscape(orderID)+"/ticket", cred, nil)
	if err != nil {
		return domain.Ticket{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTicketSize))
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("read ticket: %w", err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/pdf"
	}
	return domain.Ticket{OrderID: orderID, ContentType: ct, Body: body}, nil
}

// ListAdminOrders returns the back-office order list as the backend sent it.
func (c *Client) ListAdminOrders(ctx context.Context, cred domain.Credential) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/admin/pedidos", cred, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
