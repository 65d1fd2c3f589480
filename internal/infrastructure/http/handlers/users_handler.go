package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/application/auth"
	"github.com/AndresRicci93/countries-api/internal/application/ports"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
	"github.com/AndresRicci93/countries-api/internal/infrastructure/http/middleware"
)

// UsersHandler serves /users: registration, login, and the public listing.
type UsersHandler struct {
	register *auth.Register
	login    *auth.Login
	users    ports.UserRepository
	events   ports.EventEnqueuer
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUsersHandler(register *auth.Register, login *auth.Login, users ports.UserRepository, events ports.EventEnqueuer, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		register: register,
		login:    login,
		users:    users,
		events:   events,
		validate: validator.New(),
		log:      log,
	}
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Register handles POST /users.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var body struct {
		Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
		Password string `json:"password" validate:"required,min=6,max=200"`
		Email    string `json:"email" validate:"required,email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperrors.Validation("request body is not valid JSON")
	}
	if err := h.validate.Struct(&body); err != nil {
		return err
	}
	user, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("register", false)
		emitAudit(h.log, h.events, r, "user.registered", body.Username, "", false, err.Error())
		return err
	}
	middleware.RecordAuthAttempt("register", true)
	emitAudit(h.log, h.events, r, "user.registered", user.Username, user.ID.String(), true, "")
	return writeJSON(w, http.StatusCreated, userResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}

// Login handles POST /users/login. Success returns {"token": "..."}.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var body struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return apperrors.Validation("request body is not valid JSON")
	}
	if err := h.validate.Struct(&body); err != nil {
		return err
	}
	token, err := h.login.Execute(r.Context(), auth.LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		middleware.RecordAuthAttempt("login", false)
		emitAudit(h.log, h.events, r, "user.login", body.Username, "", false, err.Error())
		return err
	}
	middleware.RecordAuthAttempt("login", true)
	emitAudit(h.log, h.events, r, "user.login", body.Username, "", true, "")
	return writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// List handles GET /users: the registered accounts without password hashes.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.users.List(r.Context())
	if err != nil {
		return err
	}
	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, userResponse{
			ID:        u.ID.String(),
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	return writeJSON(w, http.StatusOK, items)
}
