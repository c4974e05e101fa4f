package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dwikikusuma/food-storefront/internal/auth/app"
	"github.com/dwikikusuma/food-storefront/internal/session"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

const sessionCookie = "storefront_session"

type ctxKey int

const (
	loggerKey ctxKey = iota
	sessionKey
)

func loggerFrom(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := s.log.With(
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), loggerKey, log)))

		log.Debug("request served",
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("took", time.Since(start)),
		)
	})
}

// withSession attaches the caller's session, issuing a fresh cookie when the
// request carries none or one that is not a uuid.
func (s *server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(sessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		sess := s.sessions.Get(r.Context(), id)
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		ctx = context.WithValue(ctx, loggerKey, loggerFrom(ctx).With(slog.String("session", id)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := sessionFrom(r.Context()).User(); !ok {
			writeErr(w, r, app.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, _, _ := sessionFrom(r.Context()).User()
		if !u.IsAdmin() {
			writeErr(w, r, errForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
