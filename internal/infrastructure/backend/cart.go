package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

var _ ports.CartAPI = (*Client)(nil)

// FetchCart reads the remote cart and maps it to line items.
func (c *Client) FetchCart(ctx context.Context, cred domain.Credential) ([]domain.LineItem, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/carrito", cred, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []domain.LineItem{}, nil
	}

	items := make([]domain.LineItem, 0, len(env.Data.Items))
	for _, it := range env.Data.Items {
		items = append(items, it.toLineItem())
	}
	return items, nil
}

// AddCartItem adds quantity units of productID to the remote cart.
func (c *Client) AddCartItem(ctx context.Context, cred domain.Credential, productID string, quantity int) error {
	return c.do(ctx, http.MethodPost, "/api/carrito/items", cred, addCartItemRequest{
		ProductoID: productID,
		Cantidad:   quantity,
	}, nil)
}

// DeleteCartItem removes productID from the remote cart.
func (c *Client) DeleteCartItem(ctx context.Context, cred domain.Credential, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/carrito/items/"+url.PathEscape(productID), cred, nil, nil)
}
