package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brendenGit/Warbler/models"
)

func TestCreateMessage(t *testing.T) {
	users, messages := setupTestServices(t)
	ctx := context.Background()
	u := signup(t, users, "testuser")

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	messages.now = func() time.Time { return fixed }

	m, err := messages.Create(ctx, u.ID, "Hello")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if m.Text != "Hello" || m.UserID != u.ID || !m.Timestamp.Equal(fixed) {
		t.Errorf("Create() = %+v", m)
	}

	got, err := messages.Get(ctx, m.ID)
	if err != nil || got.User.ID != u.ID {
		t.Errorf("Get() = %+v, %v; want owner loaded", got, err)
	}
	byUser, _ := messages.ByUser(ctx, u.ID, 100)
	if len(byUser) != 1 {
		t.Errorf("ByUser() = %d messages; want 1", len(byUser))
	}
}

func TestCreateMessageValidation(t *testing.T) {
	users, messages := setupTestServices(t)
	ctx := context.Background()
	u := signup(t, users, "testuser")

	for _, text := range []string{"", "   ", strings.Repeat("a", models.MaxMessageLength+1)} {
		if _, err := messages.Create(ctx, u.ID, text); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("Create(%d chars) error = %v; want ErrInvalidInput", len(text), err)
		}
	}
	if _, err := messages.Create(ctx, u.ID, strings.Repeat("é", models.MaxMessageLength)); err != nil {
		t.Errorf("Create(max runes) error = %v", err)
	}
	if _, err := messages.Create(ctx, 9999999, "test message"); !errors.Is(err, models.ErrReferentialIntegrity) {
		t.Errorf("Create(unknown owner) error = %v; want ErrReferentialIntegrity", err)
	}
}

func TestDeleteMessageOwnership(t *testing.T) {
	users, messages := setupTestServices(t)
	ctx := context.Background()
	owner := signup(t, users, "owner")
	other := signup(t, users, "other")

	m, err := messages.Create(ctx, owner.ID, "mine")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := messages.Like(ctx, other.ID, m.ID); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	if err := messages.Delete(ctx, other.ID, m.ID); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("Delete(non-owner) error = %v; want ErrForbidden", err)
	}
	if _, err := messages.Get(ctx, m.ID); err != nil {
		t.Fatalf("message gone after non-owner delete: %v", err)
	}

	if err := messages.Delete(ctx, owner.ID, m.ID); err != nil {
		t.Fatalf("Delete(owner) error = %v", err)
	}
	if _, err := messages.Get(ctx, m.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get(deleted) error = %v; want ErrNotFound", err)
	}
	if n, _ := messages.LikeCount(ctx, m.ID); n != 0 {
		t.Errorf("likes after delete = %d; want 0", n)
	}
	if err := messages.Delete(ctx, owner.ID, m.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v; want ErrNotFound", err)
	}
}

func TestLikes(t *testing.T) {
	users, messages := setupTestServices(t)
	ctx := context.Background()
	u := signup(t, users, "testuser")
	m, _ := messages.Create(ctx, u.ID, "test message")

	for i := 0; i < 2; i++ {
		if err := messages.Like(ctx, u.ID, m.ID); err != nil {
			t.Fatalf("Like() #%d error = %v", i+1, err)
		}
	}
	if n, _ := messages.LikeCount(ctx, m.ID); n != 1 {
		t.Errorf("likes after liking twice = %d; want 1", n)
	}
	liked, _ := users.Likes(ctx, u.ID)
	if len(liked) != 1 || liked[0].ID != m.ID {
		t.Errorf("Likes() = %v", liked)
	}

	if err := messages.Unlike(ctx, u.ID, m.ID); err != nil {
		t.Fatalf("Unlike() error = %v", err)
	}
	if n, _ := messages.LikeCount(ctx, m.ID); n != 0 {
		t.Errorf("likes after unlike = %d; want 0", n)
	}

	on, err := messages.ToggleLike(ctx, u.ID, m.ID)
	if err != nil || !on {
		t.Fatalf("ToggleLike() = %v, %v; want liked", on, err)
	}
	ids, _ := messages.LikedIDs(ctx, u.ID)
	if !ids[m.ID] {
		t.Errorf("LikedIDs() = %v; want %d", ids, m.ID)
	}
	on, err = messages.ToggleLike(ctx, u.ID, m.ID)
	if err != nil || on {
		t.Fatalf("ToggleLike() again = %v, %v; want unliked", on, err)
	}

	if _, err := messages.ToggleLike(ctx, u.ID, 424242); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("ToggleLike(missing) error = %v; want ErrNotFound", err)
	}
}

func TestTimelineIncludesFollowed(t *testing.T) {
	users, messages := setupTestServices(t)
	ctx := context.Background()
	me := signup(t, users, "me")
	friend := signup(t, users, "friend")
	stranger := signup(t, users, "stranger")

	messages.Create(ctx, me.ID, "mine")
	messages.Create(ctx, friend.ID, "friend's")
	messages.Create(ctx, stranger.ID, "stranger's")
	if err := users.Follow(ctx, me.ID, friend.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	timeline, err := messages.Timeline(ctx, me.ID, 100)
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("Timeline() = %d messages; want 2", len(timeline))
	}
	for _, m := range timeline {
		if m.UserID == stranger.ID {
			t.Errorf("Timeline() contains a stranger's message")
		}
	}
}
