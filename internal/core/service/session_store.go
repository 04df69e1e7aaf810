package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

// SessionStore owns the signed-in Identity and its Credential and mirrors
// them to a SessionStorage. In-memory state is authoritative; persistence is
// best-effort.
type SessionStore struct {
	storage ports.SessionStorage
	key     string
	log     zerolog.Logger

	mu         sync.RWMutex
	identity   *domain.Identity
	credential domain.Credential
	hydrated   bool
}

var _ ports.SessionService = (*SessionStore)(nil)

// NewSessionStore returns a logged-out store. Call Hydrate once before use.
func NewSessionStore(storage ports.SessionStorage, key string, log zerolog.Logger) *SessionStore {
	if key == "" {
		key = domain.DefaultSessionKey
	}
	return &SessionStore{storage: storage, key: key, log: log}
}

// Hydrate loads the persisted record. Absent or malformed records leave the
// store logged out. Only the first call has any effect.
func (s *SessionStore) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true

	raw, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			s.log.Debug().Str("key", s.key).Msg("no persisted session")
		} else {
			s.log.Warn().Err(err).Str("key", s.key).Msg("session storage read failed, starting logged out")
		}
		return
	}

	id, cred, err := domain.DecodeSessionRecord(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("ignoring persisted session")
		return
	}

	s.identity = &id
	s.credential = cred
	s.log.Info().Str("user_id", id.ID).Msg("session restored")
}

// Set replaces identity and credential together and persists them. An empty
// credential is treated as a logout so the pair never splits.
func (s *SessionStore) Set(ctx context.Context, id domain.Identity, cred domain.Credential) {
	if cred.Empty() {
		s.log.Warn().Str("user_id", id.ID).Msg("set called without credential, logging out")
		s.Logout(ctx)
		return
	}

	id = id.Normalized()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = &id
	s.credential = cred
	s.persistLocked(ctx)
}

// Update merges patch into the current identity. No-op when logged out.
func (s *SessionStore) Update(ctx context.Context, patch domain.IdentityPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return
	}
	merged := s.identity.Apply(patch)
	s.identity = &merged
	s.persistLocked(ctx)
}

// Logout clears both fields and erases the record. Idempotent.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasSet := s.identity != nil
	s.identity = nil
	s.credential = ""

	if err := s.storage.Delete(ctx, s.key); err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		s.log.Warn().Err(err).Str("key", s.key).Msg("failed to erase persisted session")
	}
	if wasSet {
		s.log.Info().Msg("session closed")
	}
}

// Identity returns a copy of the current identity.
func (s *SessionStore) Identity() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return domain.Identity{}, false
	}
	return s.identity.Clone(), true
}

// Credential returns the bearer token, empty when logged out.
func (s *SessionStore) Credential() domain.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// IsAuthenticated reports whether an identity is currently held.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// persistLocked writes the current pair. Must be called with s.mu held so the
// stored record follows the same order as the in-memory changes.
func (s *SessionStore) persistLocked(ctx context.Context) {
	raw, err := domain.EncodeSessionRecord(*s.identity, s.credential)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode session")
		return
	}
	if err := s.storage.Save(ctx, s.key, raw); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("failed to persist session")
	}
}
