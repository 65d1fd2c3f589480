package ports

import "time"

// PasswordHasher hashes and verifies passwords (Argon2id). Verify returns an
// error only when the stored hash itself is unreadable; a plain mismatch is
// (false, nil).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenPayload is the decoded content of a verified token. It is a reference
// to an identity, not a trusted identity by itself; the authenticator must
// resolve it against storage.
type TokenPayload struct {
	UserID string
}

// TokenService signs and verifies bearer tokens with a process-wide
// symmetric secret. Verification failures are reported through the
// errors.ErrTokenMalformed and errors.ErrTokenExpired causes.
type TokenService interface {
	Issue(userID string, ttl time.Duration) (string, error)
	Verify(token string) (TokenPayload, error)
}
