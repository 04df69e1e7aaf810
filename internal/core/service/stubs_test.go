package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests
// ---------------------------------------------------------------------------

type memStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	loadErr error
	saveErr error
	saves   int
	deletes int
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string][]byte{}}
}

func (m *memStorage) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return v, nil
}

func (m *memStorage) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.data, key)
	return nil
}

type stubCartAPI struct {
	items    []domain.LineItem
	fetchErr error
	onFetch  func()
	fetches  int
}

func (s *stubCartAPI) FetchCart(_ context.Context, _ domain.Credential) ([]domain.LineItem, error) {
	s.fetches++
	if s.onFetch != nil {
		s.onFetch()
	}
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *stubCartAPI) AddCartItem(context.Context, domain.Credential, string, int) error {
	return nil
}

func (s *stubCartAPI) DeleteCartItem(context.Context, domain.Credential, string) error {
	return nil
}

type recordingDispatcher struct {
	mu   sync.Mutex
	cmds []domain.SyncCommand
}

func (d *recordingDispatcher) Enqueue(cmd domain.SyncCommand) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cmds = append(d.cmds, cmd)
}

func (d *recordingDispatcher) commands() []domain.SyncCommand {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.SyncCommand(nil), d.cmds...)
}

type staticCreds struct {
	mu   sync.Mutex
	cred domain.Credential
}

func (s *staticCreds) Credential() domain.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

func (s *staticCreds) set(c domain.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = c
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.StockNotice
}

func (n *recordingNotifier) NotifyStock(notice domain.StockNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

type stubAccountAPI struct {
	identity   domain.Identity
	credential domain.Credential
	loginErr   error
	logoutErr  error
	userID     string
	updated    domain.Identity
	updateErr  error

	logouts      []domain.Credential
	updateUserID string
}

func (s *stubAccountAPI) Login(context.Context, string, string) (domain.Identity, domain.Credential, error) {
	if s.loginErr != nil {
		return domain.Identity{}, "", s.loginErr
	}
	return s.identity, s.credential, nil
}

func (s *stubAccountAPI) Register(context.Context, ports.RegisterInput) (string, error) {
	return s.userID, nil
}

func (s *stubAccountAPI) Logout(_ context.Context, cred domain.Credential) error {
	s.logouts = append(s.logouts, cred)
	return s.logoutErr
}

func (s *stubAccountAPI) UpdateProfile(_ context.Context, _ domain.Credential, userID string, _ ports.ProfileInput) (domain.Identity, error) {
	s.updateUserID = userID
	if s.updateErr != nil {
		return domain.Identity{}, s.updateErr
	}
	return s.updated, nil
}

type stubOrderAPI struct {
	orderID   string
	createErr error
	ticket    domain.Ticket
	ticketErr error
	admin     json.RawMessage

	creates   int
	downloads int
}

func (s *stubOrderAPI) CreateOrder(context.Context, domain.Credential) (string, error) {
	s.creates++
	return s.orderID, s.createErr
}

func (s *stubOrderAPI) DownloadTicket(context.Context, domain.Credential, string) (domain.Ticket, error) {
	s.downloads++
	return s.ticket, s.ticketErr
}

func (s *stubOrderAPI) ListAdminOrders(context.Context, domain.Credential) (json.RawMessage, error) {
	return s.admin, nil
}

type memArchive struct {
	tickets map[string]domain.Ticket
}

func (a *memArchive) Put(_ context.Context, ownerID string, t domain.Ticket) error {
	a.tickets[ownerID+"/"+t.OrderID] = t
	return nil
}

func (a *memArchive) Get(_ context.Context, ownerID, orderID string) (domain.Ticket, error) {
	t, ok := a.tickets[ownerID+"/"+orderID]
	if !ok {
		return domain.Ticket{}, domain.ErrNotFound
	}
	return t, nil
}
