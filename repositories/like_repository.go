package repositories

import (
	"context"

	"github.com/brendenGit/Warbler/database"
	"github.com/brendenGit/Warbler/models"

	"gorm.io/gorm"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, userID, messageID uint) error {
	like := models.Like{UserID: userID, MessageID: messageID}
	err := r.db.WithContext(ctx).Omit("User", "Message").Create(&like).Error
	return database.TranslateError("like message", err)
}

func (r *likeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
	return database.TranslateError("unlike message", err)
}

func (r *likeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	if err != nil {
		return false, database.TranslateError("check like", err)
	}
	return count > 0, nil
}

func (r *likeRepository) Toggle(ctx context.Context, userID, messageID uint) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		return tx.Omit("User", "Message").Create(&models.Like{UserID: userID, MessageID: messageID}).Error
	})
	if err != nil {
		return false, database.TranslateError("toggle like", err)
	}
	return liked, nil
}

func (r *likeRepository) CountForMessage(ctx context.Context, messageID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("message_id = ?", messageID).Count(&count).Error
	if err != nil {
		return 0, database.TranslateError("count likes", err)
	}
	return count, nil
}

// GetLikedMessages returns the messages userID has liked, newest first.
func (r *likeRepository) GetLikedMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Preload("User").
		Order("messages.timestamp DESC").
		Find(&messages).Error
	if err != nil {
		return nil, database.TranslateError("get liked messages", err)
	}
	return messages, nil
}

func (r *likeRepository) GetLikedMessageIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, database.TranslateError("get liked message ids", err)
	}
	liked := make(map[uint]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
