package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/brendenGit/Warbler/auth"
	"github.com/brendenGit/Warbler/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// timelineSize caps how many messages a timeline or profile shows.
const timelineSize = 100

// Handler carries what every request handler needs.
type Handler struct {
	users    *services.UserService
	messages *services.MessageService
	sessions *auth.SessionManager
	views    *Views
}

func NewHandler(users *services.UserService, messages *services.MessageService, sessions *auth.SessionManager, views *Views) *Handler {
	return &Handler{
		users:    users,
		messages: messages,
		sessions: sessions,
		views:    views,
	}
}

// render writes page name with status. data gets the layout's fields
// (current user, pending flashes, search query) filled in.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["CurrentUser"] = auth.FromContext(r.Context()).User
	data["Flashes"] = h.sessions.Flashes(w, r)
	if _, ok := data["Query"]; !ok {
		data["Query"] = ""
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.views.Execute(w, name, data); err != nil {
		logrus.WithError(err).WithField("template", name).Error("Failed to render template")
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error.html", map[string]interface{}{
		"StatusCode": http.StatusNotFound,
		"Message":    "The page you are looking for does not exist.",
	})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("Request failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// NotFound renders the 404 page for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// likedIDs returns the ids of messages the current user liked, or nil for
// anonymous requests.
func (h *Handler) likedIDs(ctx context.Context) (map[uint]bool, error) {
	id := auth.FromContext(ctx)
	if !id.Authenticated() {
		return nil, nil
	}
	return h.messages.LikedIDs(ctx, id.UserID())
}

// pathID parses the mux variable key as a positive id.
func pathID(r *http.Request, key string) (uint, bool) {
	n, err := strconv.ParseUint(mux.Vars(r)[key], 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
