package auth

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

type LoginInput struct {
	Username string
	Password string
}

// Login checks credentials and issues a bearer token. An unknown username
// and a wrong password produce the same classified error.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	ttl    time.Duration
	log    zerolog.Logger
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, ttl time.Duration, log zerolog.Logger) *Login {
	return &Login{users: users, hasher: hasher, tokens: tokens, ttl: ttl, log: log}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (string, error) {
	username := strings.ToLower(input.Username)

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		uc.log.Info().Str("username", username).Msg("login for unknown username")
		return "", apperrors.IncorrectCredentials()
	}
	ok, err := uc.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		uc.log.Info().Str("username", username).Msg("login with wrong password")
		return "", apperrors.IncorrectCredentials()
	}
	token, err := uc.tokens.Issue(user.ID.String(), uc.ttl)
	if err != nil {
		return "", err
	}
	uc.log.Info().Str("username", username).Msg("login completed")
	return token, nil
}
