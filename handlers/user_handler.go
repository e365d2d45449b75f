package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/brendenGit/Warbler/auth"
	"github.com/brendenGit/Warbler/dto"
	"github.com/brendenGit/Warbler/models"
	"github.com/brendenGit/Warbler/monitoring"
	"github.com/brendenGit/Warbler/services"

	"github.com/sirupsen/logrus"
)

// UserHandler serves signup, login, profiles and the follow/like actions.
type UserHandler struct {
	*Handler
}

func NewUserHandler(h *Handler) *UserHandler {
	return &UserHandler{Handler: h}
}

func (h *UserHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup.html", map[string]interface{}{
		"Form": services.SignupInput{},
	})
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	in := services.SignupInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		ImageURL: r.FormValue("image_url"),
	}

	user, err := h.users.Signup(r.Context(), in)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, models.ErrUniqueViolation):
			msg = "Username or email already taken"
			monitoring.SignupFailure.WithLabelValues("taken").Inc()
		case errors.Is(err, models.ErrInvalidInput):
			msg = validationMessage(err)
			monitoring.SignupFailure.WithLabelValues("invalid").Inc()
		default:
			h.serverError(w, r, err)
			return
		}
		in.Password = ""
		h.render(w, r, http.StatusBadRequest, "signup.html", map[string]interface{}{
			"Form":  in,
			"Error": msg,
		})
		return
	}

	if err := h.sessions.Login(w, r, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	monitoring.SignupSuccess.Inc()
	logrus.WithField("user_id", user.ID).Info("User signed up")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *UserHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", nil)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	username := r.FormValue("username")

	user, err := h.users.Authenticate(r.Context(), username, r.FormValue("password"))
	if errors.Is(err, models.ErrInvalidCredentials) {
		monitoring.LoginFailure.WithLabelValues("invalid_credentials").Inc()
		h.render(w, r, http.StatusUnauthorized, "login.html", map[string]interface{}{
			"Username": username,
			"Error":    "Invalid credentials.",
		})
		return
	}
	if err != nil {
		monitoring.LoginFailure.WithLabelValues("error").Inc()
		h.serverError(w, r, err)
		return
	}

	if err := h.sessions.Login(w, r, user.ID); err != nil {
		h.serverError(w, r, err)
		return
	}
	monitoring.LoginSuccess.Inc()
	h.sessions.AddFlash(w, r, "success", fmt.Sprintf("Hello, %s!", user.Username))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.sessions.AddFlash(w, r, "success", "You have successfully logged out.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// List shows every user, or those matching ?q=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	users, err := h.users.Search(r.Context(), query)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	followingIDs, err := h.followingIDs(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "users/index.html", map[string]interface{}{
		"Users":        users,
		"FollowingIDs": followingIDs,
		"Query":        query,
	})
}

// Show renders a profile with the user's messages.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	data, ok := h.profileData(w, r)
	if !ok {
		return
	}
	user := data["User"].(*models.User)

	messages, err := h.messages.ByUser(r.Context(), user.ID, timelineSize)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	liked, err := h.likedIDs(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data["Messages"] = dto.FromMessages(messages, liked)
	h.render(w, r, http.StatusOK, "users/show.html", data)
}

func (h *UserHandler) ShowFollowing(w http.ResponseWriter, r *http.Request) {
	data, ok := h.profileData(w, r)
	if !ok {
		return
	}
	data["Users"] = data["following"]
	h.render(w, r, http.StatusOK, "users/following.html", data)
}

func (h *UserHandler) ShowFollowers(w http.ResponseWriter, r *http.Request) {
	data, ok := h.profileData(w, r)
	if !ok {
		return
	}
	data["Users"] = data["followers"]
	h.render(w, r, http.StatusOK, "users/followers.html", data)
}

func (h *UserHandler) ShowLikes(w http.ResponseWriter, r *http.Request) {
	data, ok := h.profileData(w, r)
	if !ok {
		return
	}
	liked, err := h.likedIDs(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data["Messages"] = dto.FromMessages(data["likes"].([]models.Message), liked)
	h.render(w, r, http.StatusOK, "users/likes.html", data)
}

// Follow makes the current user follow {id}.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context()).UserID()
	target, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	err := h.users.Follow(r.Context(), me, target)
	switch {
	case err == nil:
		monitoring.FollowsChanged.WithLabelValues("follow").Inc()
	case errors.Is(err, models.ErrUniqueViolation):
		// already following
	case errors.Is(err, models.ErrSelfFollow):
		h.sessions.AddFlash(w, r, "danger", "You cannot follow yourself.")
	case errors.Is(err, models.ErrNotFound):
		h.notFound(w, r)
		return
	default:
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/users/%d/following", me), http.StatusFound)
}

// StopFollowing removes the current user's edge to {id}.
func (h *UserHandler) StopFollowing(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context()).UserID()
	target, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}
	if err := h.users.Unfollow(r.Context(), me, target); err != nil {
		h.serverError(w, r, err)
		return
	}
	monitoring.FollowsChanged.WithLabelValues("unfollow").Inc()
	http.Redirect(w, r, fmt.Sprintf("/users/%d/following", me), http.StatusFound)
}

// AddLike toggles the current user's like on message {id}.
func (h *UserHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r.Context()).UserID()
	messageID, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return
	}

	liked, err := h.messages.ToggleLike(r.Context(), me, messageID)
	if errors.Is(err, models.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	state := "unliked"
	if liked {
		state = "liked"
	}
	monitoring.LikesToggled.WithLabelValues(state).Inc()
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *UserHandler) EditProfileForm(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context()).User
	h.render(w, r, http.StatusOK, "users/edit.html", map[string]interface{}{
		"Form": services.ProfileInput{
			Username:       user.Username,
			Email:          user.Email,
			ImageURL:       user.ImageURL,
			HeaderImageURL: user.HeaderImageURL,
			Bio:            user.Bio,
			Location:       user.Location,
		},
	})
}

func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	me := auth.FromContext(r.Context()).UserID()
	in := services.ProfileInput{
		Username:       r.FormValue("username"),
		Email:          r.FormValue("email"),
		ImageURL:       r.FormValue("image_url"),
		HeaderImageURL: r.FormValue("header_image_url"),
		Bio:            r.FormValue("bio"),
		Location:       r.FormValue("location"),
	}

	_, err := h.users.UpdateProfile(r.Context(), me, in, r.FormValue("password"))
	var msg string
	switch {
	case err == nil:
		http.Redirect(w, r, fmt.Sprintf("/users/%d", me), http.StatusFound)
		return
	case errors.Is(err, models.ErrInvalidCredentials):
		msg = "Wrong password, please try again."
	case errors.Is(err, models.ErrUniqueViolation):
		msg = "Username or email already taken"
	case errors.Is(err, models.ErrInvalidInput):
		msg = validationMessage(err)
	default:
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusBadRequest, "users/edit.html", map[string]interface{}{
		"Form":  in,
		"Error": msg,
	})
}

// profileData loads the user named by {id} and the counts the profile
// header shows. It writes the response itself and returns false on failure.
func (h *UserHandler) profileData(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	ctx := r.Context()
	id, ok := pathID(r, "id")
	if !ok {
		h.notFound(w, r)
		return nil, false
	}
	user, err := h.users.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		h.notFound(w, r)
		return nil, false
	}
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}

	following, err := h.users.Following(ctx, id)
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	followers, err := h.users.Followers(ctx, id)
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	likes, err := h.users.Likes(ctx, id)
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	messageCount, err := h.messages.CountByUser(ctx, id)
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	followingIDs, err := h.followingIDs(r)
	if err != nil {
		h.serverError(w, r, err)
		return nil, false
	}

	return map[string]interface{}{
		"User":           user,
		"MessageCount":   messageCount,
		"FollowingCount": len(following),
		"FollowerCount":  len(followers),
		"LikeCount":      len(likes),
		"IsFollowing":    followingIDs[user.ID],
		"FollowingIDs":   followingIDs,
		"following":      following,
		"followers":      followers,
		"likes":          likes,
	}, true
}

// followingIDs is the set of users the current user follows; empty for
// anonymous requests.
func (h *UserHandler) followingIDs(r *http.Request) (map[uint]bool, error) {
	ids := map[uint]bool{}
	id := auth.FromContext(r.Context())
	if !id.Authenticated() {
		return ids, nil
	}
	following, err := h.users.Following(r.Context(), id.UserID())
	if err != nil {
		return nil, err
	}
	for _, u := range following {
		ids[u.ID] = true
	}
	return ids, nil
}

// validationMessage strips the sentinel prefix from an ErrInvalidInput.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := models.ErrInvalidInput.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
