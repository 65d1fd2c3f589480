package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
)

// emitAudit logs the event and hands it to the async queue. Enqueue failures
// are logged and never fail the request.
func emitAudit(log zerolog.Logger, events ports.EventEnqueuer, r *http.Request, event, username, resourceID string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("username", username).
		Str("resource_id", resourceID).
		Str("ip", clientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("audit")

	if events == nil {
		return
	}
	if err := events.Enqueue(r.Context(), ports.AuditEvent{
		Event:      event,
		Username:   username,
		ResourceID: resourceID,
		IP:         clientIP(r),
		Success:    success,
		Err:        errMsg,
	}); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("enqueue audit event failed")
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
