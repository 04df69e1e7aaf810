package ports

import (
	"context"

	"github.com/renova/storefront/internal/core/domain"
)

// CredentialSource yields the bearer token to attach to remote calls.
type CredentialSource interface {
	Credential() domain.Credential
}

// CartService is the optimistic cart owned by the current identity.
type CartService interface {
	Refresh(ctx context.Context)
	Add(ctx context.Context, p domain.Product, quantity int) *domain.StockNotice
	UpdateQuantity(ctx context.Context, productID string, quantity int) *domain.StockNotice
	Remove(ctx context.Context, productID string)
	Clear()
	Items() []domain.LineItem
	Total() float64
}
