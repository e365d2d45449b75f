package handlers

import (
	"net/http"

	"github.com/brendenGit/Warbler/auth"
	"github.com/brendenGit/Warbler/dto"
)

// HomeHandler serves the landing page.
type HomeHandler struct {
	*Handler
}

func NewHomeHandler(h *Handler) *HomeHandler {
	return &HomeHandler{Handler: h}
}

// Home shows the sign-up hero to anonymous visitors and the timeline of
// followed users' messages otherwise.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	id := auth.FromContext(r.Context())
	if !id.Authenticated() {
		h.render(w, r, http.StatusOK, "home-anon.html", nil)
		return
	}

	messages, err := h.messages.Timeline(r.Context(), id.UserID(), timelineSize)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	liked, err := h.likedIDs(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "home.html", map[string]interface{}{
		"Messages": dto.FromMessages(messages, liked),
	})
}
