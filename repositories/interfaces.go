package repositories

import (
	"context"

	"github.com/brendenGit/Warbler/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

type MessageRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Message, error)
	Create(ctx context.Context, message *models.Message) error
	// Delete removes the message and every like that references it in one
	// transaction.
	Delete(ctx context.Context, id uint) error
	GetByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	GetTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error)
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID uint) error
	Delete(ctx context.Context, followerID, followedID uint) error
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
}

type LikeRepository interface {
	Create(ctx context.Context, userID, messageID uint) error
	Delete(ctx context.Context, userID, messageID uint) error
	Exists(ctx context.Context, userID, messageID uint) (bool, error)
	// Toggle removes the like when present and adds it otherwise. It
	// reports whether the message is liked afterwards.
	Toggle(ctx context.Context, userID, messageID uint) (bool, error)
	CountForMessage(ctx context.Context, messageID uint) (int64, error)
	GetLikedMessages(ctx context.Context, userID uint) ([]models.Message, error)
	GetLikedMessageIDs(ctx context.Context, userID uint) (map[uint]bool, error)
}
