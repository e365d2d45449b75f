package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/brendenGit/Warbler/models"
	"github.com/brendenGit/Warbler/repositories"
)

// MessageService owns messages and likes.
type MessageService struct {
	messages repositories.MessageRepository
	likes    repositories.LikeRepository
	now      func() time.Time
}

func NewMessageService(messages repositories.MessageRepository, likes repositories.LikeRepository) *MessageService {
	return &MessageService{
		messages: messages,
		likes:    likes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create posts text as ownerID. The owner always comes from the caller's
// authenticated identity, never from request input.
func (s *MessageService) Create(ctx context.Context, ownerID uint, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", models.ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, fmt.Errorf("%w: message text exceeds %d characters", models.ErrInvalidInput, models.MaxMessageLength)
	}

	message := &models.Message{
		Text:      text,
		Timestamp: s.now(),
		UserID:    ownerID,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) Get(ctx context.Context, id uint) (*models.Message, error) {
	return s.messages.FindByID(ctx, id)
}

// Delete removes the message and its likes when actorID owns it. Anyone
// else gets models.ErrForbidden and nothing is removed.
func (s *MessageService) Delete(ctx context.Context, actorID, messageID uint) error {
	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != actorID {
		return models.ErrForbidden
	}
	return s.messages.Delete(ctx, messageID)
}

// ToggleLike likes the message for userID, or removes the like when it
// already exists. It reports whether the message ends up liked.
func (s *MessageService) ToggleLike(ctx context.Context, userID, messageID uint) (bool, error) {
	if _, err := s.messages.FindByID(ctx, messageID); err != nil {
		return false, err
	}
	return s.likes.Toggle(ctx, userID, messageID)
}

// Like is an idempotent add.
func (s *MessageService) Like(ctx context.Context, userID, messageID uint) error {
	err := s.likes.Create(ctx, userID, messageID)
	if errors.Is(err, models.ErrUniqueViolation) {
		return nil
	}
	return err
}

func (s *MessageService) Unlike(ctx context.Context, userID, messageID uint) error {
	return s.likes.Delete(ctx, userID, messageID)
}

func (s *MessageService) LikeCount(ctx context.Context, messageID uint) (int64, error) {
	return s.likes.CountForMessage(ctx, messageID)
}

func (s *MessageService) LikedIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	return s.likes.GetLikedMessageIDs(ctx, userID)
}

func (s *MessageService) ByUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.messages.GetByUserID(ctx, userID, limit)
}

// CountByUser is the total number of messages userID has posted.
func (s *MessageService) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.messages.CountByUserID(ctx, userID)
}

// Timeline returns the newest messages by userID and the users they follow.
func (s *MessageService) Timeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	return s.messages.GetTimeline(ctx, userID, limit)
}
