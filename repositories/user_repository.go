package repositories

import (
	"context"
	"strings"

	"github.com/brendenGit/Warbler/database"
	"github.com/brendenGit/Warbler/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, database.TranslateError("find user by id", err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, database.TranslateError("find user by username", err)
	}
	return &user, nil
}

// Search returns users whose username contains query, ignoring case. An
// empty query returns every user.
func (r *userRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	tx := r.db.WithContext(ctx).Order("username")
	if query = strings.TrimSpace(query); query != "" {
		tx = tx.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if err := tx.Find(&users).Error; err != nil {
		return nil, database.TranslateError("search users", err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return database.TranslateError("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	return database.TranslateError("save user", r.db.WithContext(ctx).Save(user).Error)
}
