package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	cookieMaxAge    = 60 * 60 * 48
	cookiePrefix    = "shop_"
	cookieSessionID = cookiePrefix + "session-id"

	cartKeyPrefix = "cart:"
)

type (
	ctxKeySessionID struct{}
	ctxKeyLog       struct{}
)

// SessionMiddleware makes sure every request carries a browser session id,
// issuing a cookie on first visit. The session selects the cart.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(cookieSessionID); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     cookieSessionID,
				Value:    id,
				Path:     "/",
				MaxAge:   cookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), ctxKeySessionID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggerMiddleware attaches a request-scoped logger and echoes the request id
// set by chi's RequestID middleware.
func LoggerMiddleware(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.WithField("http.req.path", r.URL.Path).
				WithField("http.req.method", r.Method)
			if id := middleware.GetReqID(r.Context()); id != "" {
				reqLog = reqLog.WithField("http.req.id", id)
				w.Header().Set("X-Request-ID", id)
			}
			if id := sessionID(r); id != "" {
				reqLog = reqLog.WithField("session", id)
			}
			ctx := context.WithValue(r.Context(), ctxKeyLog{}, reqLog)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionID(r *http.Request) string {
	if v, ok := r.Context().Value(ctxKeySessionID{}).(string); ok {
		return v
	}
	return ""
}

func cartKey(r *http.Request) string {
	return cartKeyPrefix + sessionID(r)
}

func requestLogger(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}
