package repository

import (
	"errors"

	"github.com/memonote/memonote-backend/internal/domain"
	"gorm.io/gorm"
)

// TagRepository defines tag data access. AdjustMemoCount is the only
// writer of the denormalized memo_count; decrements are guarded at
// zero and rows are never auto-deleted when the count drains.
type TagRepository interface {
	FindByName(ownerID int64, name string) (*domain.Tag, error)

	// FindOrCreate returns the (owner, name) tag, creating it with
	// memo_count=0 when absent. A create race against the unique index
	// is resolved by one internal re-read.
	FindOrCreate(ownerID int64, name string) (*domain.Tag, error)

	AdjustMemoCount(ownerID int64, name string, delta int) error
	ListByUser(ownerID int64) ([]*domain.Tag, error)
	CountByUser(ownerID int64) (int64, error)
	Rename(ownerID int64, oldName, newName string) error
	Delete(ownerID int64, name string) error

	WithTx(tx *gorm.DB) TagRepository
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{db: tx}
}

func (r *tagRepository) FindByName(ownerID int64, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.Where("user_id = ? AND name = ?", ownerID, name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindOrCreate(ownerID int64, name string) (*domain.Tag, error) {
	tag, err := r.FindByName(ownerID, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &domain.Tag{UserID: ownerID, Name: name, MemoCount: 0}
	err = r.db.Create(created).Error
	if err == nil {
		return created, nil
	}

	// Two concurrent syncs can race to create the same tag; the unique
	// index rejects the loser, which then reads the winner's row.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.FindByName(ownerID, name)
	}
	return nil, err
}

func (r *tagRepository) AdjustMemoCount(ownerID int64, name string, delta int) error {
	if delta > 0 {
		return r.db.Model(&domain.Tag{}).
			Where("user_id = ? AND name = ?", ownerID, name).
			UpdateColumn("memo_count", gorm.Expr("memo_count + 1")).Error
	}
	return r.db.Model(&domain.Tag{}).
		Where("user_id = ? AND name = ? AND memo_count >= 1", ownerID, name).
		UpdateColumn("memo_count", gorm.Expr("memo_count - 1")).Error
}

func (r *tagRepository) ListByUser(ownerID int64) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := r.db.Where("user_id = ?", ownerID).
		Order("memo_count DESC, name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) CountByUser(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Tag{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *tagRepository) Rename(ownerID int64, oldName, newName string) error {
	return r.db.Model(&domain.Tag{}).
		Where("user_id = ? AND name = ?", ownerID, oldName).
		Update("name", newName).Error
}

func (r *tagRepository) Delete(ownerID int64, name string) error {
	return r.db.Where("user_id = ? AND name = ?", ownerID, name).
		Delete(&domain.Tag{}).Error
}
