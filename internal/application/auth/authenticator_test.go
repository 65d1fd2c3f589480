package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/domain"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

func TestAuthenticateResolvesIdentityFromStorage(t *testing.T) {
	bob := bobUser()
	repo := newFakeUserRepo(bob)
	tokens := newFakeTokenService()
	token, _ := tokens.Issue(bob.ID.String(), time.Hour)

	a := NewTokenAuthenticator(tokens, repo, zerolog.Nop())
	ident, err := a.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if ident.ID != bob.ID || ident.Username != "bob" {
		t.Errorf("identity = %+v, want bob's stored fields", ident)
	}
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	bob := bobUser()
	tokens := newFakeTokenService()
	validForBob, _ := tokens.Issue(bob.ID.String(), time.Hour)
	orphan, _ := tokens.Issue(uuid.NewString(), time.Hour)
	nonUUID, _ := tokens.Issue("not-a-uuid", time.Hour)

	a := NewTokenAuthenticator(tokens, newFakeUserRepo(bob), zerolog.Nop())

	cases := []struct {
		name   string
		bearer string
	}{
		{"empty token", ""},
		{"unknown token", "garbage"},
		{"token for vanished identity", orphan},
		{"token with unparsable subject", nonUUID},
	}
	var want *apperrors.Error = apperrors.Unauthenticated(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), tc.bearer)
			var appErr *apperrors.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("err = %v, want classified error", err)
			}
			// Same kind, status, and message as every other auth failure.
			if appErr.Kind != want.Kind || appErr.Status != want.Status || appErr.Message != want.Message {
				t.Errorf("renders as %+v, want uniform unauthenticated response", appErr)
			}
		})
	}

	// Sanity: the valid token still resolves.
	if _, err := a.Authenticate(context.Background(), validForBob); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
}

func TestAuthenticateVanishedIdentityKeepsCause(t *testing.T) {
	tokens := newFakeTokenService()
	orphan, _ := tokens.Issue(uuid.NewString(), time.Hour)
	a := NewTokenAuthenticator(tokens, newFakeUserRepo(), zerolog.Nop())

	_, err := a.Authenticate(context.Background(), orphan)
	if !errors.Is(err, apperrors.ErrIdentityNotFound) {
		t.Errorf("err = %v, want ErrIdentityNotFound cause for server-side logs", err)
	}
}

func TestAuthenticateRepoFailurePropagates(t *testing.T) {
	tokens := newFakeTokenService()
	token, _ := tokens.Issue(uuid.NewString(), time.Hour)
	repo := newFakeUserRepo()
	repo.err = errors.New("connection reset")

	a := NewTokenAuthenticator(tokens, repo, zerolog.Nop())
	_, err := a.Authenticate(context.Background(), token)
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		t.Fatalf("storage failure should propagate unclassified, got %+v", appErr)
	}
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAuthorizeOwnershipSymmetry(t *testing.T) {
	owner := &domain.Identity{ID: domain.NewUserID(uuid.New()), Username: "alice"}
	if err := Authorize(owner, "alice"); err != nil {
		t.Errorf("owner denied: %v", err)
	}
	for _, other := range []string{"bob", "mallory", "ALICE ", ""} {
		ident := &domain.Identity{ID: domain.NewUserID(uuid.New()), Username: other}
		err := Authorize(ident, "alice")
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindOwnershipDenied {
			t.Fatalf("Authorize(%q) err = %v, want ownership denial", other, err)
		}
		if appErr.Status != 401 {
			t.Errorf("denial status = %d, want 401", appErr.Status)
		}
	}
}

func TestAuthorizeIsCaseSensitive(t *testing.T) {
	// Registration folds usernames to lower case but ownership comparison
	// does not normalize. This pins the asymmetry on purpose.
	ident := &domain.Identity{ID: domain.NewUserID(uuid.New()), Username: "Alice"}
	if err := Authorize(ident, "alice"); err == nil {
		t.Error("mixed-case username authorized against lower-cased owner; comparison must stay exact")
	}
}

func TestAuthorizeNilIdentityDenied(t *testing.T) {
	if err := Authorize(nil, "alice"); err == nil {
		t.Error("nil identity must be denied")
	}
}
