package auth

import (
	"errors"

	"github.com/AndresRicci93/countries-api/internal/domain"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

// Authorize permits a mutation iff the identity's username equals the
// resource's recorded owner. The comparison is exact and case-sensitive:
// registration lower-cases usernames before storage, but no normalization is
// applied here. Callers check existence first, so a denial confirms the
// resource exists without revealing who owns it.
func Authorize(identity *domain.Identity, owner string) error {
	if identity == nil || identity.Username != owner {
		// The real owner is logged by the caller, never carried in the error.
		return apperrors.OwnershipDenied(errors.New("authenticated user is not the recorded owner"))
	}
	return nil
}
