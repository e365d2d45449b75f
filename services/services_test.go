package services

import (
	"context"
	"testing"

	"github.com/brendenGit/Warbler/database"
	"github.com/brendenGit/Warbler/models"
	"github.com/brendenGit/Warbler/repositories"

	"golang.org/x/crypto/bcrypt"
)

func setupTestServices(t *testing.T) (*UserService, *MessageService) {
	t.Helper()

	db, err := database.OpenInMemory(t.Name())
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := repositories.NewUserRepository(db.DB)
	messages := repositories.NewMessageRepository(db.DB)
	follows := repositories.NewFollowRepository(db.DB)
	likes := repositories.NewLikeRepository(db.DB)

	userService := NewUserService(users, follows, likes)
	userService.HashCost = bcrypt.MinCost
	return userService, NewMessageService(messages, likes)
}

func signup(t *testing.T, s *UserService, username string) *models.User {
	t.Helper()
	u, err := s.Signup(context.Background(), SignupInput{
		Username: username,
		Email:    username + "@test.com",
		Password: "testpass",
	})
	if err != nil {
		t.Fatalf("Signup(%s) error = %v", username, err)
	}
	return u
}
