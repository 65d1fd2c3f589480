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

func bobUser() *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Username:     "bob",
		Email:        "b@x.com",
		PasswordHash: "hashed:longenough",
	}
}

func TestLoginIssuesToken(t *testing.T) {
	bob := bobUser()
	tokens := newFakeTokenService()
	uc := NewLogin(newFakeUserRepo(bob), plainHasher{}, tokens, time.Hour, zerolog.Nop())

	token, err := uc.Execute(context.Background(), LoginInput{Username: "bob", Password: "longenough"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	payload, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if payload.UserID != bob.ID.String() {
		t.Errorf("token references %s, want %s", payload.UserID, bob.ID)
	}
}

func TestLoginFoldsUsernameCase(t *testing.T) {
	uc := NewLogin(newFakeUserRepo(bobUser()), plainHasher{}, newFakeTokenService(), time.Hour, zerolog.Nop())
	if _, err := uc.Execute(context.Background(), LoginInput{Username: "BOB", Password: "longenough"}); err != nil {
		t.Errorf("login with upper-cased username should fold to the stored form: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	uc := NewLogin(newFakeUserRepo(bobUser()), plainHasher{}, newFakeTokenService(), time.Hour, zerolog.Nop())
	_, err := uc.Execute(context.Background(), LoginInput{Username: "bob", Password: "nope"})
	assertIncorrectCredentials(t, err)
}

func TestLoginUnknownUser(t *testing.T) {
	uc := NewLogin(newFakeUserRepo(), plainHasher{}, newFakeTokenService(), time.Hour, zerolog.Nop())
	_, err := uc.Execute(context.Background(), LoginInput{Username: "ghost", Password: "longenough"})
	assertIncorrectCredentials(t, err)
}

func assertIncorrectCredentials(t *testing.T, err error) {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v, want classified error", err)
	}
	if appErr.Kind != apperrors.KindIncorrectCredentials || appErr.Status != 400 {
		t.Errorf("err = %v, want 400 INCORRECT_CREDENTIALS", appErr)
	}
}
