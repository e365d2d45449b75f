package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/brendenGit/Warbler/auth"
	"github.com/brendenGit/Warbler/dto"
	"github.com/brendenGit/Warbler/models"
	"github.com/brendenGit/Warbler/monitoring"

	"github.com/sirupsen/logrus"
)

// MessageHandler handles message-related endpoints
type MessageHandler struct {
	*Handler
}

// NewMessageHandler initializes a new MessageHandler
func NewMessageHandler(h *Handler) *MessageHandler {
	return &MessageHandler{Handler: h}
}

func (h *MessageHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "messages/new.html", nil)
}

// Create posts a message as the session user. Any user_id in the form is
// ignored.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	me := auth.FromContext(r.Context()).UserID()
	text := r.FormValue("text")

	_, err := h.messages.Create(r.Context(), me, text)
	if errors.Is(err, models.ErrInvalidInput) {
		h.render(w, r, http.StatusBadRequest, "messages/new.html", map[string]interface{}{
			"Text":  text,
			"Error": validationMessage(err),
		})
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	monitoring.MessagesPosted.Inc()
	http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
}

func (h *MessageHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	message, err := h.messages.Get(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	count, err := h.messages.LikeCount(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	liked, err := h.likedIDs(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "messages/show.html", map[string]interface{}{
		"Message":   dto.FromMessage(*message, liked),
		"LikeCount": count,
	})
}

// Delete removes message {id} when the session user owns it. Everyone else
// is refused and nothing changes.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context()).UserID()
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	err := h.messages.Delete(r.Context(), me, id)
	switch {
	case err == nil:
		monitoring.MessagesDeleted.Inc()
		http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
	case errors.Is(err, models.ErrForbidden):
		logrus.WithFields(logrus.Fields{"user_id": me, "message_id": id}).Warn("Refused to delete message of another user")
		monitoring.AuthorizationDenied.WithLabelValues("not_owner").Inc()
		h.sessions.Deny(w, r)
	case errors.Is(err, models.ErrNotFound):
		h.sessions.AddFlash(w, r, "danger", "Message not found.")
		http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
	default:
		h.serverError(w, r, err)
	}
}
