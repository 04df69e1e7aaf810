package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

type checkoutService struct {
	orders  ports.OrderAPI
	session ports.SessionService
	cart    ports.CartService
	archive ports.ReceiptArchive
	log     zerolog.Logger
	now     func() time.Time
}

// NewCheckoutService returns a CheckoutService. archive may be nil, in which
// case tickets are always fetched from the backend.
func NewCheckoutService(
	orders ports.OrderAPI,
	session ports.SessionService,
	cart ports.CartService,
	archive ports.ReceiptArchive,
	log zerolog.Logger,
) ports.CheckoutService {
	return &checkoutService{
		orders:  orders,
		session: session,
		cart:    cart,
		archive: archive,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Checkout places an order for the current cart. On success the local cart is
// cleared; the backend owns the remote cart from there.
func (s *checkoutService) Checkout(ctx context.Context) (*domain.Receipt, error) {
	cred := s.session.Credential()
	if cred.Empty() {
		return nil, domain.ErrUnauthenticated
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	orderID, err := s.orders.CreateOrder(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	receipt := &domain.Receipt{
		OrderID:  orderID,
		Items:    items,
		Total:    domain.Total(items),
		PlacedAt: s.now(),
	}
	s.cart.Clear()

	s.log.Info().
		Str("order_id", orderID).
		Int("items", len(items)).
		Float64("total", receipt.Total).
		Msg("order placed")

	return receipt, nil
}

// Ticket returns the PDF for orderID, from the signed-in user's archive when
// possible.
func (s *checkoutService) Ticket(ctx context.Context, orderID string) (domain.Ticket, error) {
	id, ok := s.session.Identity()
	cred := s.session.Credential()
	if !ok || cred.Empty() {
		return domain.Ticket{}, domain.ErrUnauthenticated
	}

	if s.archive != nil {
		t, err := s.archive.Get(ctx, id.ID, orderID)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Str("order_id", orderID).Msg("receipt archive read failed")
		}
	}

	t, err := s.orders.DownloadTicket(ctx, cred, orderID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("ticket: %w", err)
	}

	if s.archive != nil {
		if err := s.archive.Put(ctx, id.ID, t); err != nil {
			s.log.Warn().Err(err).Str("order_id", orderID).Msg("failed to archive ticket")
		}
	}
	return t, nil
}

// AdminOrders lists every order for the back-office. Requires RoleAdmin.
func (s *checkoutService) AdminOrders(ctx context.Context) ([]byte, error) {
	id, ok := s.session.Identity()
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if !id.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	raw, err := s.orders.ListAdminOrders(ctx, s.session.Credential())
	if err != nil {
		return nil, fmt.Errorf("admin orders: %w", err)
	}
	return raw, nil
}
