package auth

import (
	"context"

	"github.com/brendenGit/Warbler/models"
)

type ctxKey struct{}

// Identity is who is making the request: anonymous when User is nil.
type Identity struct {
	User *models.User
}

func (i Identity) Authenticated() bool {
	return i.User != nil
}

// UserID returns the current user's id, or 0 when anonymous.
func (i Identity) UserID() uint {
	if i.User == nil {
		return 0
	}
	return i.User.ID
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request's identity; anonymous if none was set.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}
