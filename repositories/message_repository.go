package repositories

import (
	"context"

	"github.com/brendenGit/Warbler/database"
	"github.com/brendenGit/Warbler/models"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		return nil, database.TranslateError("find message", err)
	}
	return &message, nil
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	err := r.db.WithContext(ctx).Omit("User").Create(message).Error
	return database.TranslateError("create message", err)
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Message{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return database.TranslateError("delete message", err)
}

// GetByUserID returns the user's messages, newest first.
func (r *messageRepository) GetByUserID(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, database.TranslateError("get messages by user", err)
	}
	return messages, nil
}

func (r *messageRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, database.TranslateError("count messages by user", err)
	}
	return count, nil
}

// GetTimeline returns the newest messages written by the user or by anyone
// the user follows.
func (r *messageRepository) GetTimeline(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	following := r.db.Model(&models.Follow{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", userID)

	err := r.db.WithContext(ctx).
		Where("user_id = ? OR user_id IN (?)", userID, following).
		Preload("User").
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, database.TranslateError("get timeline", err)
	}
	return messages, nil
}
