package ports

import (
	"context"
	"encoding/json"

	"github.com/renova/storefront/internal/core/domain"
)

// CartAPI is the remote cart resource exposed by the marketplace backend.
type CartAPI interface {
	FetchCart(ctx context.Context, cred domain.Credential) ([]domain.LineItem, error)
	AddCartItem(ctx context.Context, cred domain.Credential, productID string, quantity int) error
	DeleteCartItem(ctx context.Context, cred domain.Credential, productID string) error
}

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	Phone     string
	BirthDate string
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	Username  string
	Email     string
	FullName  string
	Phone     string
	BirthDate string
	AvatarURL string
}

// AccountAPI covers authentication and profile endpoints.
type AccountAPI interface {
	Login(ctx context.Context, email, password string) (domain.Identity, domain.Credential, error)
	Register(ctx context.Context, in RegisterInput) (string, error)
	Logout(ctx context.Context, cred domain.Credential) error
	UpdateProfile(ctx context.Context, cred domain.Credential, userID string, in ProfileInput) (domain.Identity, error)
}

// OrderAPI covers checkout and order documents.
type OrderAPI interface {
	CreateOrder(ctx context.Context, cred domain.Credential) (string, error)
	DownloadTicket(ctx context.Context, cred domain.Credential, orderID string) (domain.Ticket, error)
	ListAdminOrders(ctx context.Context, cred domain.Credential) (json.RawMessage, error)
}

// ReceiptArchive keeps issued tickets so they can be served again without a
// backend round trip. Tickets are scoped by the owning user id; Get returns
// domain.ErrNotFound on a miss.
type ReceiptArchive interface {
	Put(ctx context.Context, ownerID string, t domain.Ticket) error
	Get(ctx context.Context, ownerID, orderID string) (domain.Ticket, error)
}
