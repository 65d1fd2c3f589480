package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassifiedErrorStatuses(t *testing.T) {
	cases := []struct {
		err    *Error
		kind   Kind
		status int
	}{
		{Unauthenticated(ErrTokenExpired), KindUnauthenticated, http.StatusUnauthorized},
		{OwnershipDenied(nil), KindOwnershipDenied, http.StatusUnauthorized},
		{NotFound("nothing here"), KindNotFound, http.StatusNotFound},
		{Validation("bad body"), KindValidation, http.StatusBadRequest},
		{Conflict("taken"), KindConflict, http.StatusConflict},
		{IncorrectCredentials(), KindIncorrectCredentials, http.StatusBadRequest},
		{Internal(errors.New("boom")), KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.Kind != tc.kind {
			t.Errorf("kind = %s, want %s", tc.err.Kind, tc.kind)
		}
		if tc.err.Status != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.kind, tc.err.Status, tc.status)
		}
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	err := Unauthenticated(ErrIdentityNotFound)
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Error("cause should be discoverable via errors.Is")
	}
}

func TestAuthFailuresRenderIdentically(t *testing.T) {
	// A vanished identity must be indistinguishable on the wire from a bad
	// signature or an expired token.
	a := Unauthenticated(ErrTokenMalformed)
	b := Unauthenticated(ErrTokenExpired)
	c := Unauthenticated(ErrIdentityNotFound)
	for _, e := range []*Error{b, c} {
		if e.Kind != a.Kind || e.Status != a.Status || e.Message != a.Message {
			t.Errorf("auth failure %v renders differently from %v", e, a)
		}
	}
}
