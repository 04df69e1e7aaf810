package ports

import (
	"context"

	"github.com/renova/storefront/internal/core/domain"
)

// AccountService drives login, sign-up, logout and profile edits against the
// backend and keeps the session and cart stores consistent with the result.
type AccountService interface {
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	Register(ctx context.Context, in RegisterInput) (string, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, in ProfileInput) (domain.Identity, error)
}

// CheckoutService places orders from the current cart.
type CheckoutService interface {
	Checkout(ctx context.Context) (*domain.Receipt, error)
	Ticket(ctx context.Context, orderID string) (domain.Ticket, error)
	AdminOrders(ctx context.Context) ([]byte, error)
}
