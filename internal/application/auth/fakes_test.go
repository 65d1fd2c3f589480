package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
	"github.com/AndresRicci93/countries-api/internal/domain"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by username
	err   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users[username], nil
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

// plainHasher stores passwords with a recognizable prefix; good enough for
// wiring tests that do not exercise argon2 itself.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type fakeTokenService struct {
	issued map[string]string // token -> user id
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]string)}
}

func (s *fakeTokenService) Issue(userID string, ttl time.Duration) (string, error) {
	token := fmt.Sprintf("token-%d", len(s.issued))
	s.issued[token] = userID
	return token, nil
}

func (s *fakeTokenService) Verify(token string) (ports.TokenPayload, error) {
	id, ok := s.issued[token]
	if !ok {
		return ports.TokenPayload{}, apperrors.ErrTokenMalformed
	}
	return ports.TokenPayload{UserID: id}, nil
}
