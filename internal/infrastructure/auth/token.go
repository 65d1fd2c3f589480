package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
	"github.com/AndresRicci93/countries-api/internal/application/ports"
)

// TokenService implements ports.TokenService with HS256 and a process-wide
// symmetric secret. Tokens carry the user id as the subject plus issued-at
// and expiry claims; verification is a pure function of (token, secret,
// clock) with no server-side session state and no expiry leeway: a token is
// rejected from its exact expiry instant onward.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithClock overrides the clock read at issue and verification time.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, opts ...Option) *TokenService {
	s := &TokenService{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenService) Issue(userID string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and checks the token. The returned payload is a reference to
// an identity, not a trusted identity; callers must resolve it.
func (s *TokenService) Verify(tokenString string) (ports.TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.TokenPayload{}, fmt.Errorf("%w: %v", apperrors.ErrTokenExpired, err)
		}
		return ports.TokenPayload{}, fmt.Errorf("%w: %v", apperrors.ErrTokenMalformed, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return ports.TokenPayload{}, apperrors.ErrTokenMalformed
	}
	return ports.TokenPayload{UserID: claims.Subject}, nil
}

var _ ports.TokenService = (*TokenService)(nil)
