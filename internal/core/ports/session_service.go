package ports

import (
	"context"

	"github.com/renova/storefront/internal/core/domain"
)

// SessionService is the single source of truth for who is signed in.
type SessionService interface {
	Hydrate(ctx context.Context)
	Set(ctx context.Context, id domain.Identity, cred domain.Credential)
	Update(ctx context.Context, patch domain.IdentityPatch)
	Logout(ctx context.Context)
	Identity() (domain.Identity, bool)
	Credential() domain.Credential
	IsAuthenticated() bool
}
