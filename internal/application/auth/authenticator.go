package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
	"github.com/AndresRicci93/countries-api/internal/domain"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

// Authenticator turns a raw bearer token into a trusted identity. Route
// handlers invoke it directly on the operations that need it; there is no
// implicit registration and unauthenticated routes never see it.
type Authenticator interface {
	Authenticate(ctx context.Context, bearer string) (*domain.Identity, error)
}

// TokenAuthenticator verifies the token signature and expiry, then resolves
// the referenced user against storage. All failure modes collapse into the
// same classified unauthenticated error; the distinct cause only reaches
// server-side logs.
type TokenAuthenticator struct {
	tokens ports.TokenService
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewTokenAuthenticator(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens, users: users, log: log}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, bearer string) (*domain.Identity, error) {
	if bearer == "" {
		return nil, apperrors.Unauthenticated(apperrors.ErrTokenMalformed)
	}
	payload, err := a.tokens.Verify(bearer)
	if err != nil {
		return nil, apperrors.Unauthenticated(err)
	}
	id, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, apperrors.Unauthenticated(apperrors.ErrTokenMalformed)
	}
	user, err := a.users.GetByID(ctx, domain.NewUserID(id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Logged in full here; the response stays indistinguishable from a
		// bad signature so callers cannot probe which ids ever existed.
		a.log.Info().Str("user_id", payload.UserID).Msg("valid token for a user that no longer exists")
		return nil, apperrors.Unauthenticated(apperrors.ErrIdentityNotFound)
	}
	// Identity fields come from the stored row, never from the claims.
	return &domain.Identity{ID: user.ID, Username: user.Username}, nil
}

var _ Authenticator = (*TokenAuthenticator)(nil)
