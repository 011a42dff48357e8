package repository

import (
	"github.com/memonote/memonote-backend/internal/domain"
	"gorm.io/gorm"
)

// DevTokenRepository defines personal API token data access
type DevTokenRepository interface {
	FindDefault(userID int64) (*domain.DevToken, error)
	Create(token *domain.DevToken) error
	UpdateToken(id int64, token string) error
	DeleteDefault(userID int64) error
}

type devTokenRepository struct {
	db *gorm.DB
}

// NewDevTokenRepository creates a new DevTokenRepository
func NewDevTokenRepository(db *gorm.DB) DevTokenRepository {
	return &devTokenRepository{db: db}
}

func (r *devTokenRepository) FindDefault(userID int64) (*domain.DevToken, error) {
	var token domain.DevToken
	err := r.db.Where("user_id = ? AND name = ?", userID, domain.DefaultDevTokenName).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *devTokenRepository) Create(token *domain.DevToken) error {
	return r.db.Create(token).Error
}

func (r *devTokenRepository) UpdateToken(id int64, token string) error {
	return r.db.Model(&domain.DevToken{}).Where("id = ?", id).
		Update("token", token).Error
}

func (r *devTokenRepository) DeleteDefault(userID int64) error {
	return r.db.Where("user_id = ? AND name = ?", userID, domain.DefaultDevTokenName).
		Delete(&domain.DevToken{}).Error
}
