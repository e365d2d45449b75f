package auth

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"

	"github.com/brendenGit/Warbler/models"
	"github.com/brendenGit/Warbler/monitoring"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const (
	// SessionName is the cookie holding the signed session.
	SessionName = "warbler"
	// CurrUserKey is the session key under which the logged-in user's id lives.
	CurrUserKey = "curr_user"

	flashKey      = "_flash"
	sessionMaxAge = 7 * 24 * 60 * 60
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// UserLookup resolves a session's user id to a stored user.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// SessionManager wraps a gorilla cookie store and turns sessions into
// request-scoped identities.
type SessionManager struct {
	store *sessions.CookieStore
	users UserLookup
}

// NewSessionManager creates a manager signing cookies with secret. A nil
// secret gets a random key, which invalidates sessions on restart.
func NewSessionManager(secret []byte, users UserLookup) *SessionManager {
	if len(secret) == 0 {
		logrus.Warn("SESSION_SECRET not set, generating a random session key")
		secret = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store, users: users}
}

// Codecs exposes the cookie codecs so callers can mint or read session
// cookies outside a request, e.g. in tests.
func (m *SessionManager) Codecs() []securecookie.Codec {
	return m.store.Codecs
}

func (m *SessionManager) session(r *http.Request) *sessions.Session {
	// Get still returns a fresh session when the cookie fails to decode.
	s, err := m.store.Get(r, SessionName)
	if err != nil {
		logrus.WithError(err).Debug("Discarding undecodable session cookie")
	}
	return s
}

// Login records userID as the session's current user.
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	s := m.session(r)
	s.Values[CurrUserKey] = userID
	return s.Save(r, w)
}

// Logout removes the current user from the session.
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	delete(s.Values, CurrUserKey)
	return s.Save(r, w)
}

func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	s := m.session(r)
	s.AddFlash(Flash{Category: category, Message: message}, flashKey)
	if err := s.Save(r, w); err != nil {
		logrus.WithError(err).Error("Failed to save flash message")
	}
}

// Flashes pops the pending flash messages. It must run before the response
// body is written.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.session(r)
	raw := s.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(r, w); err != nil {
		logrus.WithError(err).Error("Failed to clear flash messages")
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}

// Identify resolves the session at the start of every request and stores
// the resulting Identity in the request context. A session pointing at a
// user that no longer exists is cleared and treated as anonymous.
func (m *SessionManager) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id Identity

		s := m.session(r)
		if userID, ok := s.Values[CurrUserKey].(uint); ok {
			user, err := m.users.FindByID(r.Context(), userID)
			if err == nil {
				id = Identity{User: user}
			} else if errors.Is(err, models.ErrNotFound) {
				logrus.WithField("user_id", userID).Info("Session user not found, clearing session")
				delete(s.Values, CurrUserKey)
				if err := s.Save(r, w); err != nil {
					logrus.WithError(err).Error("Failed to clear stale session")
				}
			} else {
				logrus.WithError(err).WithField("user_id", userID).Error("Failed to resolve session user")
			}
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireLogin redirects anonymous callers to the home page with a flash
// instead of running next.
func (m *SessionManager) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).Authenticated() {
			monitoring.AuthorizationDenied.WithLabelValues("anonymous").Inc()
			m.Deny(w, r)
			return
		}
		next(w, r)
	}
}

// Deny is the response to any authorization failure: a flash and a
// redirect home, with no state change.
func (m *SessionManager) Deny(w http.ResponseWriter, r *http.Request) {
	m.AddFlash(w, r, "danger", "Access unauthorized.")
	http.Redirect(w, r, "/", http.StatusFound)
}
