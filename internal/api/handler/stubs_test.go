package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSession struct {
	identity   *domain.Identity
	credential domain.Credential
}

func (s *stubSession) Hydrate(context.Context) {}
func (s *stubSession) Set(_ context.Context, id domain.Identity, cred domain.Credential) {
	s.identity, s.credential = &id, cred
}
func (s *stubSession) Update(context.Context, domain.IdentityPatch) {}
func (s *stubSession) Logout(context.Context)                       { s.identity, s.credential = nil, "" }
func (s *stubSession) Credential() domain.Credential                { return s.credential }
func (s *stubSession) IsAuthenticated() bool                        { return s.identity != nil }
func (s *stubSession) Identity() (domain.Identity, bool) {
	if s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

type stubAccounts struct {
	session  *stubSession
	loginErr error
	register ports.RegisterInput
	profile  ports.ProfileInput
	logouts  int
}

func (a *stubAccounts) Login(ctx context.Context, email, _ string) (domain.Identity, error) {
	if a.loginErr != nil {
		return domain.Identity{}, a.loginErr
	}
	id := domain.Identity{ID: "u1", Email: email, Roles: []domain.Role{domain.RoleClient}}
	a.session.Set(ctx, id, "tok")
	return id, nil
}

func (a *stubAccounts) Register(_ context.Context, in ports.RegisterInput) (string, error) {
	a.register = in
	return "u9", nil
}

func (a *stubAccounts) Logout(ctx context.Context) {
	a.logouts++
	a.session.Logout(ctx)
}

func (a *stubAccounts) UpdateProfile(_ context.Context, in ports.ProfileInput) (domain.Identity, error) {
	a.profile = in
	return domain.Identity{}, nil
}

type stubCart struct {
	items    []domain.LineItem
	notice   *domain.StockNotice
	added    []domain.Product
	addedQty []int
	updated  map[string]int
	removed  []string
	cleared  bool
	refresh  int
	// afterItems runs once Items has taken its copy.
	afterItems func()
}

func (c *stubCart) Refresh(context.Context) { c.refresh++ }
func (c *stubCart) Add(_ context.Context, p domain.Product, qty int) *domain.StockNotice {
	c.added = append(c.added, p)
	c.addedQty = append(c.addedQty, qty)
	c.items = append(c.items, domain.LineItem{ProductID: p.ID, Price: p.Price, Quantity: qty, MaxQuantity: p.MaxQuantity})
	return c.notice
}
func (c *stubCart) UpdateQuantity(_ context.Context, id string, qty int) *domain.StockNotice {
	if c.updated == nil {
		c.updated = map[string]int{}
	}
	c.updated[id] = qty
	return c.notice
}
func (c *stubCart) Remove(_ context.Context, id string) { c.removed = append(c.removed, id) }
func (c *stubCart) Clear()                              { c.cleared = true; c.items = nil }
func (c *stubCart) Items() []domain.LineItem {
	out := append([]domain.LineItem(nil), c.items...)
	if c.afterItems != nil {
		c.afterItems()
	}
	return out
}
func (c *stubCart) Total() float64                      { return domain.Total(c.items) }

type stubCheckout struct {
	receipt *domain.Receipt
	err     error
	ticket  domain.Ticket
	admin   []byte
}

func (s *stubCheckout) Checkout(context.Context) (*domain.Receipt, error) { return s.receipt, s.err }
func (s *stubCheckout) Ticket(context.Context, string) (domain.Ticket, error) {
	return s.ticket, s.err
}
func (s *stubCheckout) AdminOrders(context.Context) ([]byte, error) { return s.admin, s.err }

// newContext builds an echo.Context with the validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
