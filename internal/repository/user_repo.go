package repository

import (
	"time"

	"github.com/memonote/memonote-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository defines user data access, including the
// last-clicked-mentioned watermark that delimits read vs. unread
// mentions. The watermark only ever moves forward.
type UserRepository interface {
	FindByID(id int64) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByDisplayName(displayName string) (*domain.User, error)

	// FindAdmin returns the earliest-registered admin account.
	FindAdmin() (*domain.User, error)
	Create(user *domain.User) error
	Update(user *domain.User) error
	Count() (int64, error)

	// Watermark returns the user's last-clicked-mentioned timestamp,
	// nil when the user has never opened their mention list.
	Watermark(userID int64) (*time.Time, error)

	// MarkMentionedRead advances the watermark. A timestamp at or
	// before the current value is ignored: read state never moves
	// backward.
	MarkMentionedRead(userID int64, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByDisplayName(displayName string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("display_name = ?", displayName).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAdmin() (*domain.User, error) {
	var user domain.User
	err := r.db.Where("role = ?", domain.RoleAdmin).Order("id ASC").First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *domain.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *userRepository) Watermark(userID int64) (*time.Time, error) {
	var user domain.User
	err := r.db.Select("last_clicked_mentioned").Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return user.LastClickedMentioned, nil
}

func (r *userRepository) MarkMentionedRead(userID int64, at time.Time) error {
	return r.db.Model(&domain.User{}).
		Where("id = ? AND (last_clicked_mentioned IS NULL OR last_clicked_mentioned < ?)", userID, at).
		Update("last_clicked_mentioned", at).Error
}
