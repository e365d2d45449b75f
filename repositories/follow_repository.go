package repositories

import (
	"context"

	"github.com/brendenGit/Warbler/database"
	"github.com/brendenGit/Warbler/models"

	"gorm.io/gorm"
)

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followedID uint) error {
	follow := models.Follow{FollowerID: followerID, FollowedID: followedID}
	err := r.db.WithContext(ctx).Omit("Follower", "Followed").Create(&follow).Error
	return database.TranslateError("follow user", err)
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
	return database.TranslateError("unfollow user", err)
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, database.TranslateError("check follow", err)
	}
	return count > 0, nil
}

// GetFollowers returns the users following userID.
func (r *followRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, database.TranslateError("get followers", err)
	}
	return users, nil
}

// GetFollowing returns the users that userID follows.
func (r *followRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, database.TranslateError("get following", err)
	}
	return users, nil
}
