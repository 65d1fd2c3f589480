package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/application/auth"
	"github.com/AndresRicci93/countries-api/internal/application/ports"
	"github.com/AndresRicci93/countries-api/internal/domain"
	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

// CountriesHandler serves /countries. Reads are public; create, replace and
// delete authenticate the bearer token explicitly, and replace/delete are
// restricted to the recorded owner.
type CountriesHandler struct {
	countries ports.CountryRepository
	authn     auth.Authenticator
	events    ports.EventEnqueuer
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewCountriesHandler(countries ports.CountryRepository, authn auth.Authenticator, events ports.EventEnqueuer, log zerolog.Logger) *CountriesHandler {
	return &CountriesHandler{
		countries: countries,
		authn:     authn,
		events:    events,
		validate:  validator.New(),
		log:       log,
	}
}

type countryBody struct {
	Name       string `json:"name" validate:"required,max=56"`
	Flag       string `json:"flag" validate:"required"`
	Population *int64 `json:"population" validate:"required,min=0"`
	Region     string `json:"region" validate:"required"`
	Capital    string `json:"capital" validate:"required"`
	Currency   string `json:"currency" validate:"required,max=20"`
	TopLevel   string `json:"toplevel" validate:"required,max=10"`
	Language1  string `json:"language1" validate:"required,max=15"`
	Language2  string `json:"language2" validate:"omitempty,max=15"`
	Language3  string `json:"language3" validate:"omitempty,max=15"`
}

type countryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Flag       string `json:"flag"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
	Capital    string `json:"capital"`
	Currency   string `json:"currency"`
	TopLevel   string `json:"toplevel"`
	Language1  string `json:"language1"`
	Language2  string `json:"language2,omitempty"`
	Language3  string `json:"language3,omitempty"`
	Owner      string `json:"owner"`
}

func toCountryResponse(c *domain.Country) countryResponse {
	return countryResponse{
		ID:         c.ID,
		Name:       c.Name,
		Flag:       c.Flag,
		Population: c.Population,
		Region:     c.Region,
		Capital:    c.Capital,
		Currency:   c.Currency,
		TopLevel:   c.TopLevel,
		Language1:  c.Language1,
		Language2:  c.Language2,
		Language3:  c.Language3,
		Owner:      c.Owner,
	}
}

func (h *CountriesHandler) decodeBody(r *http.Request) (*countryBody, error) {
	var body countryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, apperrors.Validation("request body is not valid JSON")
	}
	if err := h.validate.Struct(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

// countryID validates the id path parameter before any lookup happens.
func countryID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if !domain.ValidCountryID(id) {
		return "", apperrors.Validation(fmt.Sprintf("the id [%s] supplied is not valid", id))
	}
	return id, nil
}

// List handles GET /countries (public).
func (h *CountriesHandler) List(w http.ResponseWriter, r *http.Request) error {
	countries, err := h.countries.List(r.Context())
	if err != nil {
		return err
	}
	items := make([]countryResponse, 0, len(countries))
	for _, c := range countries {
		items = append(items, toCountryResponse(c))
	}
	return writeJSON(w, http.StatusOK, items)
}

// Get handles GET /countries/{id} (public).
func (h *CountriesHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := countryID(r)
	if err != nil {
		return err
	}
	country, err := h.countries.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	if country == nil {
		return apperrors.NotFound(fmt.Sprintf("country with id [%s] does not exist", id))
	}
	return writeJSON(w, http.StatusOK, toCountryResponse(country))
}

// Create handles POST /countries. Requires authentication; the new document
// is owned by the authenticated user.
func (h *CountriesHandler) Create(w http.ResponseWriter, r *http.Request) error {
	ident, err := h.authn.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		return err
	}
	body, err := h.decodeBody(r)
	if err != nil {
		return err
	}
	now := time.Now()
	country := body.toDomain(domain.NewCountryID(), ident.Username, now, now)
	if err := h.countries.Create(r.Context(), country); err != nil {
		return err
	}
	emitAudit(h.log, h.events, r, "country.created", ident.Username, country.ID, true, "")
	return writeJSON(w, http.StatusCreated, toCountryResponse(country))
}

// Replace handles PUT /countries/{id}: authenticate, then validate, then
// locate, then check ownership, then write. The window between the ownership
// check and the write is not transactional; a concurrent owner change can
// slip through and is an accepted race.
func (h *CountriesHandler) Replace(w http.ResponseWriter, r *http.Request) error {
	ident, err := h.authn.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		return err
	}
	id, err := countryID(r)
	if err != nil {
		return err
	}
	body, err := h.decodeBody(r)
	if err != nil {
		return err
	}
	existing, err := h.countries.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NotFound(fmt.Sprintf("country with id [%s] does not exist", id))
	}
	if err := auth.Authorize(ident, existing.Owner); err != nil {
		h.log.Warn().
			Str("username", ident.Username).
			Str("owner", existing.Owner).
			Str("country_id", id).
			Msg("replace denied: requester is not the owner")
		emitAudit(h.log, h.events, r, "country.updated", ident.Username, id, false, "not the owner")
		return err
	}
	country := body.toDomain(id, ident.Username, existing.CreatedAt, time.Now())
	updated, err := h.countries.Replace(r.Context(), country)
	if err != nil {
		return err
	}
	if updated == nil {
		// Deleted between the ownership check and the write.
		return apperrors.NotFound(fmt.Sprintf("country with id [%s] does not exist", id))
	}
	emitAudit(h.log, h.events, r, "country.updated", ident.Username, id, true, "")
	return writeJSON(w, http.StatusOK, toCountryResponse(updated))
}

// Delete handles DELETE /countries/{id}: locate first, then authenticate,
// then check ownership. A missing document is reported as 404 even to
// unauthenticated callers; existence leaks, ownership does not.
func (h *CountriesHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := countryID(r)
	if err != nil {
		return err
	}
	existing, err := h.countries.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NotFound(fmt.Sprintf("country with id [%s] does not exist, nothing to delete", id))
	}
	ident, err := h.authn.Authenticate(r.Context(), bearerToken(r))
	if err != nil {
		return err
	}
	if err := auth.Authorize(ident, existing.Owner); err != nil {
		h.log.Warn().
			Str("username", ident.Username).
			Str("owner", existing.Owner).
			Str("country_id", id).
			Msg("delete denied: requester is not the owner")
		emitAudit(h.log, h.events, r, "country.deleted", ident.Username, id, false, "not the owner")
		return err
	}
	deleted, err := h.countries.Delete(r.Context(), id)
	if err != nil {
		return err
	}
	if deleted == nil {
		return apperrors.NotFound(fmt.Sprintf("country with id [%s] does not exist, nothing to delete", id))
	}
	emitAudit(h.log, h.events, r, "country.deleted", ident.Username, id, true, "")
	return writeJSON(w, http.StatusOK, toCountryResponse(deleted))
}

func (b *countryBody) toDomain(id, owner string, createdAt, updatedAt time.Time) *domain.Country {
	return &domain.Country{
		ID:         id,
		Name:       b.Name,
		Flag:       b.Flag,
		Population: *b.Population,
		Region:     b.Region,
		Capital:    b.Capital,
		Currency:   b.Currency,
		TopLevel:   b.TopLevel,
		Language1:  b.Language1,
		Language2:  b.Language2,
		Language3:  b.Language3,
		Owner:      owner,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}
