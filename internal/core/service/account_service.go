package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/renova/storefront/internal/core/domain"
	"github.com/renova/storefront/internal/core/ports"
)

type accountService struct {
	api     ports.AccountAPI
	session ports.SessionService
	cart    ports.CartService
	log     zerolog.Logger
}

// NewAccountService returns an AccountService implementation.
func NewAccountService(
	api ports.AccountAPI,
	session ports.SessionService,
	cart ports.CartService,
	log zerolog.Logger,
) ports.AccountService {
	return &accountService{api: api, session: session, cart: cart, log: log}
}

// Login authenticates against the backend, stores the session and pulls the
// server cart for the new identity.
func (s *accountService) Login(ctx context.Context, email, password string) (domain.Identity, error) {
	id, cred, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("login: %w", err)
	}

	s.session.Set(ctx, id, cred)
	s.cart.Refresh(ctx)

	stored, _ := s.session.Identity()
	s.log.Info().Str("user_id", stored.ID).Msg("user logged in")
	return stored, nil
}

// Register creates the account. Signing in afterwards is up to the caller.
func (s *accountService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	userID, err := s.api.Register(ctx, in)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("user registered")
	return userID, nil
}

// Logout tells the backend (best-effort), then clears session and cart.
func (s *accountService) Logout(ctx context.Context) {
	if cred := s.session.Credential(); !cred.Empty() {
		if err := s.api.Logout(ctx, cred); err != nil {
			s.log.Warn().Err(err).Msg("backend logout failed, clearing local session anyway")
		}
	}
	s.session.Logout(ctx)
	s.cart.Refresh(ctx)
}

// UpdateProfile pushes the edit and replaces the stored identity, keeping the
// credential, roles and registration date the backend does not echo back.
func (s *accountService) UpdateProfile(ctx context.Context, in ports.ProfileInput) (domain.Identity, error) {
	current, ok := s.session.Identity()
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	cred := s.session.Credential()

	updated, err := s.api.UpdateProfile(ctx, cred, current.ID, in)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("update profile: %w", err)
	}

	if updated.ID == "" {
		updated.ID = current.ID
	}
	if updated.FullName == "" {
		updated.FullName = in.FullName
	}
	if updated.Phone == "" {
		updated.Phone = in.Phone
	}
	if updated.BirthDate == "" {
		updated.BirthDate = in.BirthDate
	}
	if updated.AvatarURL == "" {
		updated.AvatarURL = in.AvatarURL
	}
	updated.RegisteredAt = current.RegisteredAt
	updated.Roles = current.Roles

	s.session.Set(ctx, updated, cred)

	stored, _ := s.session.Identity()
	return stored, nil
}
