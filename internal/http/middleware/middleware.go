// Package middleware wraps the persona router with request IDs, access
// logging and panic recovery.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aanand-mishra/personas-app/internal/utils/response"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RequestIDHeader carries the request correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Chain applies mws to h so that mws[0] is the outermost handler.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Default is the stack used by the server: logger in context, request ID,
// access log, panic recovery.
func Default(log zerolog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		hlog.NewHandler(log),
		RequestID,
		AccessLog,
		Recover,
	}
}

// RequestID reuses an incoming X-Request-ID or generates a UUID, echoes it
// on the response and adds it to the request logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		log := zerolog.Ctx(r.Context())
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", requestID)
		})

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// AccessLog logs one line per request once the response is written.
var AccessLog = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
	event := hlog.FromRequest(r).Info()
	if status >= http.StatusInternalServerError {
		event = hlog.FromRequest(r).Error()
	}
	event.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
})

// Recover turns a panic into the usual 500 {message} response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				hlog.FromRequest(r).Error().Err(err).Msg("recovered from panic")
				response.Error(w, err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
