package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

// Mode selects how much internal detail error responses carry. Fixed at
// process start.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Handler is a request handler that reports failure by returning an error
// instead of writing to the response. The pipeline is the only place that
// writes a status and body on the error path.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Pipeline wraps handlers so returned errors and panics are classified and
// rendered under one wire contract, and logged exactly once.
type Pipeline struct {
	mode Mode
	log  zerolog.Logger
}

func NewPipeline(mode Mode, log zerolog.Logger) *Pipeline {
	if mode != ModeProduction {
		mode = ModeDevelopment
	}
	return &Pipeline{mode: mode, log: log}
}

// errorResponse is the wire shape for every failure. Detail appears only in
// development mode.
type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (p *Pipeline) Wrap(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := apperrors.Internal(fmt.Errorf("panic: %v", rec))
				p.render(w, r, err, debug.Stack())
			}
		}()
		if err := h(w, r); err != nil {
			p.render(w, r, Classify(err), nil)
		}
	}
}

// Classify normalizes any error to a classified one. First match wins:
// errors already classified by domain logic pass through verbatim; request
// validation failures flatten to one 400; storage constraint violations
// become conflicts; everything else is internal.
func Classify(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("[%s failed the %q constraint]", strings.ToLower(fe.Field()), fe.Tag()))
		}
		v := apperrors.Validation(strings.Join(msgs, ""))
		v.Err = err
		return v
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		c := apperrors.Conflict("a record with these unique fields already exists")
		c.Err = err
		return c
	}
	return apperrors.Internal(err)
}

func (p *Pipeline) render(w http.ResponseWriter, r *http.Request, err *apperrors.Error, stack []byte) {
	ev := p.log.Warn()
	if err.Status >= 500 {
		ev = p.log.Error()
	}
	ev.Str("request_id", chimid.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("kind", string(err.Kind)).
		Int("status", err.Status)
	if err.Err != nil {
		ev = ev.Err(err.Err)
	}
	if stack != nil {
		ev = ev.Bytes("stack", stack)
	}
	ev.Msg("request failed")

	resp := errorResponse{Kind: string(err.Kind), Message: err.Message}
	if p.mode == ModeDevelopment {
		if err.Err != nil {
			resp.Detail = err.Err.Error()
		}
		if stack != nil {
			if resp.Detail != "" {
				resp.Detail += "\n"
			}
			resp.Detail += string(stack)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	_ = json.NewEncoder(w).Encode(resp)
}
