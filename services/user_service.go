package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/brendenGit/Warbler/models"
	"github.com/brendenGit/Warbler/repositories"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

type ProfileInput struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// UserService owns accounts, credentials and the follow graph.
type UserService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	likes   repositories.LikeRepository

	// HashCost is the bcrypt cost used for new password hashes.
	HashCost int
}

func NewUserService(users repositories.UserRepository, follows repositories.FollowRepository, likes repositories.LikeRepository) *UserService {
	return &UserService{
		users:    users,
		follows:  follows,
		likes:    likes,
		HashCost: bcrypt.DefaultCost,
	}
}

// Signup hashes the password and persists a new user. A taken username or
// email yields models.ErrUniqueViolation.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateAccount(in.Username, in.Email); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.HashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		Password:       string(hash),
		ImageURL:       orDefault(in.ImageURL, models.DefaultImageURL),
		HeaderImageURL: models.DefaultHeaderImageURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when username and password match. An
// unknown username and a wrong password both yield
// models.ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	return s.users.Search(ctx, query)
}

// UpdateProfile applies in to the user after re-checking their password.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput, password string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.ErrInvalidCredentials
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateAccount(in.Username, in.Email); err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.ImageURL = orDefault(in.ImageURL, models.DefaultImageURL)
	user.HeaderImageURL = orDefault(in.HeaderImageURL, models.DefaultHeaderImageURL)
	user.Bio = in.Bio
	user.Location = in.Location
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Follow adds the edge follower -> followed.
func (s *UserService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		return models.ErrSelfFollow
	}
	if _, err := s.users.FindByID(ctx, followedID); err != nil {
		return err
	}
	return s.follows.Create(ctx, followerID, followedID)
}

func (s *UserService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	return s.follows.Delete(ctx, followerID, followedID)
}

// IsFollowing reports whether a follows b.
func (s *UserService) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	return s.follows.Exists(ctx, a, b)
}

// IsFollowedBy reports whether a is followed by b.
func (s *UserService) IsFollowedBy(ctx context.Context, a, b uint) (bool, error) {
	return s.follows.Exists(ctx, b, a)
}

func (s *UserService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.GetFollowing(ctx, userID)
}

func (s *UserService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.GetFollowers(ctx, userID)
}

func (s *UserService) Likes(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.likes.GetLikedMessages(ctx, userID)
}

func validateAccount(username, email string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", models.ErrInvalidInput)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", models.ErrInvalidInput)
	}
	return nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
