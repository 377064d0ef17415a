package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"kv.dev/portfolio/internal/logging"
	"kv.dev/portfolio/internal/services"
)

// SessionCookieName carries the visitor's edit session
const SessionCookieName = "kv_edit_session"

const sessionMaxAge = 30 * 24 * time.Hour

type ctxKey int

const ctxKeySession ctxKey = iota

// Sessions signs and verifies the edit-session cookie
type Sessions struct {
	codec  *securecookie.SecureCookie
	secure bool
	logger *zap.Logger
}

// NewSessions creates a Sessions signer. An empty key gets a random
// per-process key, which invalidates sessions on restart.
func NewSessions(key string, secure bool, logger *zap.Logger) *Sessions {
	logger = logging.OrNop(logger)

	hashKey := []byte(key)
	if key == "" {
		hashKey = securecookie.GenerateRandomKey(32)
		logger.Warn("using an ephemeral session signing key; set session.signing_key to keep sessions across restarts")
	}

	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(sessionMaxAge.Seconds()))
	return &Sessions{codec: codec, secure: secure, logger: logger}
}

// Middleware loads the edit session into the request context and writes the
// cookie back before the response starts if the handler changed it.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, fromCookie := s.read(r)
		original := *sess

		sw := &sessionWriter{ResponseWriter: w}
		sw.before = func() {
			if *sess != original || (!fromCookie && !sess.IsNew()) {
				s.write(w, sess)
			}
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, sess)
		next.ServeHTTP(sw, r.WithContext(ctx))
		sw.fire()
	})
}

// GetSession returns the edit session from context
func GetSession(r *http.Request) *services.EditSession {
	if sess, ok := r.Context().Value(ctxKeySession).(*services.EditSession); ok {
		return sess
	}
	return &services.EditSession{}
}

func (s *Sessions) read(r *http.Request) (*services.EditSession, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return &services.EditSession{}, false
	}
	var sess services.EditSession
	if err := s.codec.Decode(SessionCookieName, c.Value, &sess); err != nil {
		return &services.EditSession{}, false
	}
	return &sess, true
}

func (s *Sessions) write(w http.ResponseWriter, sess *services.EditSession) {
	encoded, err := s.codec.Encode(SessionCookieName, sess)
	if err != nil {
		s.logger.Error("failed to encode edit session", zap.Error(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionMaxAge),
		MaxAge:   int(sessionMaxAge.Seconds()),
	})
}

// sessionWriter runs before exactly once, ahead of the first header or body write
type sessionWriter struct {
	http.ResponseWriter
	before func()
	fired  bool
}

func (w *sessionWriter) fire() {
	if w.fired {
		return
	}
	w.fired = true
	w.before()
}

func (w *sessionWriter) WriteHeader(code int) {
	w.fire()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.fire()
	return w.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
