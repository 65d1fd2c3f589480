package ports

import (
	"context"

	"github.com/AndresRicci93/countries-api/internal/domain"
)

// UserRepository defines persistence for user accounts. Lookups return
// (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// ExistsByUsernameOrEmail reports whether either field is already taken.
	// This check is the primary uniqueness enforcement; the database unique
	// indexes back it up.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// CountryRepository defines persistence for country documents.
type CountryRepository interface {
	Create(ctx context.Context, country *domain.Country) error
	GetByID(ctx context.Context, id string) (*domain.Country, error)
	List(ctx context.Context) ([]*domain.Country, error)
	// Replace overwrites the document body and returns the stored result.
	Replace(ctx context.Context, country *domain.Country) (*domain.Country, error)
	// Delete removes the document and returns it, or (nil, nil) if absent.
	Delete(ctx context.Context, id string) (*domain.Country, error)
}
