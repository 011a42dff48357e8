package repository

import (
	"errors"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"gorm.io/gorm"
)

// RelationRepository defines user-memo relation data access. LIKE
// relations carry the memo's like_count with them: the insert/delete
// and the counter adjustment share one transaction, and the RowsAffected
// guard keeps a duplicate or repeated call from moving the counter.
type RelationRepository interface {
	Exists(userID, memoID int64, favType string) (bool, error)

	// CreateWithCount inserts the relation and bumps like_count for
	// LIKE relations. A duplicate (user, memo, type) row is rejected
	// with ErrRelationExists before any increment.
	CreateWithCount(rel *domain.UserMemoRelation) error

	// RemoveWithCount deletes the relation; like_count only decrements
	// when a row was actually removed.
	RemoveWithCount(userID, memoID int64, favType string) error

	CountByUserAndType(userID int64, favType string) (int64, error)
	ListMemoIDsByUserAndType(userID int64, favType string) ([]int64, error)
}

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a new RelationRepository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Exists(userID, memoID int64, favType string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.UserMemoRelation{}).
		Where("user_id = ? AND memo_id = ? AND fav_type = ?", userID, memoID, favType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *relationRepository) CreateWithCount(rel *domain.UserMemoRelation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&domain.UserMemoRelation{}).
			Where("user_id = ? AND memo_id = ? AND fav_type = ?", rel.UserID, rel.MemoID, rel.FavType).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return common.ErrRelationExists
		}

		if err := tx.Create(rel).Error; err != nil {
			// The unique index catches the race the count check missed.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return common.ErrRelationExists
			}
			return err
		}

		if rel.FavType != domain.RelationLike {
			return nil
		}
		return adjustLikeCount(tx, rel.MemoID, +1)
	})
}

func (r *relationRepository) RemoveWithCount(userID, memoID int64, favType string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND memo_id = ? AND fav_type = ?", userID, memoID, favType).
			Delete(&domain.UserMemoRelation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 || favType != domain.RelationLike {
			return nil
		}
		return adjustLikeCount(tx, memoID, -1)
	})
}

func (r *relationRepository) CountByUserAndType(userID int64, favType string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.UserMemoRelation{}).
		Where("user_id = ? AND fav_type = ?", userID, favType).
		Count(&count).Error
	return count, err
}

func (r *relationRepository) ListMemoIDsByUserAndType(userID int64, favType string) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&domain.UserMemoRelation{}).
		Where("user_id = ? AND fav_type = ?", userID, favType).
		Pluck("memo_id", &ids).Error
	return ids, err
}
