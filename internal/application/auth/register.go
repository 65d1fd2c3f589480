package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
	"github.com/AndresRicci93/countries-api/internal/domain"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account. Username and email are lower-cased before
// the uniqueness check and before storage; ownership comparison elsewhere is
// case-sensitive and relies on the stored form.
type Register struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher) *Register {
	return &Register{users: users, hasher: hasher}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.ToLower(input.Username)
	email := strings.ToLower(input.Email)

	taken, err := uc.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.Conflict("the email or username is already associated with an account")
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The database unique indexes close the window between the check above
	// and this insert; a concurrent duplicate surfaces as a unique-violation
	// which the error pipeline renders as a conflict.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
