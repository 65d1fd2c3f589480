package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/AndresRicci93/countries-api/internal/domain"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

func TestRegisterLowerCasesUsernameAndEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegister(repo, plainHasher{})

	user, err := uc.Execute(context.Background(), RegisterInput{
		Username: "Bob", Email: "B@X.com", Password: "longenough",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if user.Username != "bob" || user.Email != "b@x.com" {
		t.Errorf("stored as %s/%s, want lower-cased bob/b@x.com", user.Username, user.Email)
	}
	if user.PasswordHash == "longenough" {
		t.Error("password stored without hashing")
	}
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	existing := &domain.User{ID: domain.NewUserID(uuid.New()), Username: "bob", Email: "b@x.com"}
	uc := NewRegister(newFakeUserRepo(existing), plainHasher{})

	_, err := uc.Execute(context.Background(), RegisterInput{
		Username: "bob", Email: "other@x.com", Password: "longenough",
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	existing := &domain.User{ID: domain.NewUserID(uuid.New()), Username: "bob", Email: "b@x.com"}
	uc := NewRegister(newFakeUserRepo(existing), plainHasher{})

	_, err := uc.Execute(context.Background(), RegisterInput{
		Username: "carol", Email: "B@x.com", Password: "longenough",
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindConflict {
		t.Fatalf("err = %v, want conflict (email compared lower-cased)", err)
	}
}

func TestRegisterSequentialDuplicateRace(t *testing.T) {
	// Against a sequential store, only the first of two identical
	// registrations may succeed.
	repo := newFakeUserRepo()
	uc := NewRegister(repo, plainHasher{})
	in := RegisterInput{Username: "bob", Email: "b@x.com", Password: "longenough"}

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	_, err := uc.Execute(context.Background(), in)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.KindConflict {
		t.Fatalf("second registration err = %v, want conflict", err)
	}
}
