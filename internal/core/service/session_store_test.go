package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
)

func newSessionStore(storage *memStorage) *SessionStore {
	return NewSessionStore(storage, domain.DefaultSessionKey, zerolog.Nop())
}

func TestSessionStore_HydrateRestoresRecord(t *testing.T) {
	storage := newMemStorage()
	raw, _ := domain.EncodeSessionRecord(domain.Identity{ID: "u1", Roles: []domain.Role{"CLIENTE"}}, "tok")
	storage.data[domain.DefaultSessionKey] = raw

	s := newSessionStore(storage)
	s.Hydrate(context.Background())

	id, ok := s.Identity()
	if !ok || id.ID != "u1" {
		t.Fatalf("expected u1 restored, got %+v (ok=%v)", id, ok)
	}
	if s.Credential() != "tok" {
		t.Errorf("expected credential restored, got %q", s.Credential())
	}
	if !id.HasRole(domain.RoleClient) {
		t.Errorf("expected normalized CLIENT role, got %v", id.Roles)
	}
}

func TestSessionStore_HydrateIgnoresBadRecords(t *testing.T) {
	tests := []struct {
		name string
		prep func(*memStorage)
	}{
		{name: "absent", prep: func(*memStorage) {}},
		{name: "not json", prep: func(m *memStorage) { m.data[domain.DefaultSessionKey] = []byte("{{") }},
		{name: "missing token", prep: func(m *memStorage) { m.data[domain.DefaultSessionKey] = []byte(`{"user":{"id":"u1"}}`) }},
		{name: "storage error", prep: func(m *memStorage) { m.loadErr = errors.New("disk gone") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newMemStorage()
			tt.prep(storage)

			s := newSessionStore(storage)
			s.Hydrate(context.Background())

			if s.IsAuthenticated() || !s.Credential().Empty() {
				t.Error("expected logged-out store")
			}
		})
	}
}

func TestSessionStore_HydrateRunsOnce(t *testing.T) {
	storage := newMemStorage()
	s := newSessionStore(storage)
	s.Hydrate(context.Background())

	raw, _ := domain.EncodeSessionRecord(domain.Identity{ID: "u1"}, "tok")
	storage.data[domain.DefaultSessionKey] = raw
	s.Hydrate(context.Background())

	if s.IsAuthenticated() {
		t.Error("second Hydrate should be a no-op")
	}
}

func TestSessionStore_SetPersistsBoth(t *testing.T) {
	storage := newMemStorage()
	s := newSessionStore(storage)

	s.Set(context.Background(), domain.Identity{ID: "u1", Username: "ana"}, "tok")

	id, cred, err := domain.DecodeSessionRecord(storage.data[domain.DefaultSessionKey])
	if err != nil {
		t.Fatalf("decode persisted record: %v", err)
	}
	if id.ID != "u1" || cred != "tok" {
		t.Errorf("unexpected record: %+v %q", id, cred)
	}
	if !id.HasRole(domain.RoleClient) {
		t.Errorf("expected CLIENT fallback role, got %v", id.Roles)
	}
}

func TestSessionStore_SetWithoutCredentialLogsOut(t *testing.T) {
	storage := newMemStorage()
	s := newSessionStore(storage)
	s.Set(context.Background(), domain.Identity{ID: "u1"}, "tok")

	s.Set(context.Background(), domain.Identity{ID: "u2"}, "")

	if s.IsAuthenticated() {
		t.Error("expected logout")
	}
	if _, ok := storage.data[domain.DefaultSessionKey]; ok {
		t.Error("expected record erased")
	}
}

func TestSessionStore_StorageFailureKeepsMemoryState(t *testing.T) {
	storage := newMemStorage()
	storage.saveErr = errors.New("quota exceeded")
	s := newSessionStore(storage)

	s.Set(context.Background(), domain.Identity{ID: "u1"}, "tok")

	if !s.IsAuthenticated() || s.Credential() != "tok" {
		t.Error("in-memory session should survive a failed write")
	}
}

func TestSessionStore_Update(t *testing.T) {
	storage := newMemStorage()
	s := newSessionStore(storage)
	phone := "55501234"

	s.Update(context.Background(), domain.IdentityPatch{Phone: &phone})
	if s.IsAuthenticated() || storage.saves != 0 {
		t.Fatal("Update while logged out must be a no-op")
	}

	s.Set(context.Background(), domain.Identity{ID: "u1", Username: "ana"}, "tok")
	s.Update(context.Background(), domain.IdentityPatch{Phone: &phone})

	id, _ := s.Identity()
	if id.Phone != phone || id.Username != "ana" {
		t.Errorf("unexpected identity after merge: %+v", id)
	}
	persisted, _, _ := domain.DecodeSessionRecord(storage.data[domain.DefaultSessionKey])
	if persisted.Phone != phone {
		t.Errorf("merge not persisted: %+v", persisted)
	}
}

func TestSessionStore_LogoutIdempotent(t *testing.T) {
	storage := newMemStorage()
	s := newSessionStore(storage)
	s.Set(context.Background(), domain.Identity{ID: "u1"}, "tok")

	s.Logout(context.Background())
	s.Logout(context.Background())

	if s.IsAuthenticated() || !s.Credential().Empty() {
		t.Error("expected logged-out store")
	}
	if len(storage.data) != 0 {
		t.Errorf("expected empty storage, got %v", storage.data)
	}
}

func TestSessionStore_RestartRoundTrip(t *testing.T) {
	storage := newMemStorage()
	first := newSessionStore(storage)
	first.Set(context.Background(), domain.Identity{ID: "u1", Roles: []domain.Role{domain.RoleAdmin}}, "tok")

	second := newSessionStore(storage)
	second.Hydrate(context.Background())

	id, ok := second.Identity()
	if !ok || id.ID != "u1" || !id.HasRole(domain.RoleAdmin) || second.Credential() != "tok" {
		t.Errorf("session not restored: %+v %q", id, second.Credential())
	}
}

func TestSessionStore_IdentityIsACopy(t *testing.T) {
	s := newSessionStore(newMemStorage())
	s.Set(context.Background(), domain.Identity{ID: "u1", Roles: []domain.Role{domain.RoleClient}}, "tok")

	id, _ := s.Identity()
	id.Roles[0] = domain.RoleAdmin

	again, _ := s.Identity()
	if again.HasRole(domain.RoleAdmin) {
		t.Error("caller mutated store state through returned identity")
	}
}
