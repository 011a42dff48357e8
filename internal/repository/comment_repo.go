package repository

import (
	"time"

	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/mention"
	"gorm.io/gorm"
)

// CommentRepository defines comment data access. Creation, deletion and
// approval run in the same transaction as the parent memo's
// comment_count adjustment, so the counter and the rows can never
// drift apart on a failed sub-step.
type CommentRepository interface {
	FindByID(id int64) (*domain.Comment, error)
	ListByMemo(memoID int64, page, limit int, includeUnapproved bool) ([]*domain.Comment, int64, error)

	// CreateWithCount inserts the comment and, when it is approved,
	// increments the parent memo's comment_count in one transaction.
	CreateWithCount(comment *domain.Comment) error

	// DeleteWithCount removes the comment; the decrement only applies
	// when a row was actually deleted and the comment had been counted.
	DeleteWithCount(comment *domain.Comment) error

	// Approve flips an unapproved comment and increments the parent
	// count. Approving an already-approved comment is a no-op, so a
	// retry never double-applies.
	Approve(id int64) error
	ApproveByMemo(memoID int64) error

	CountMentioned(userID int64) (int64, error)
	CountUnreadMentioned(userID int64, since time.Time) (int64, error)
	CountByAuthor(userID int64) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindByID(id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByMemo(memoID int64, page, limit int, includeUnapproved bool) ([]*domain.Comment, int64, error) {
	query := r.db.Model(&domain.Comment{}).Where("memo_id = ?", memoID)
	if !includeUnapproved {
		// Registered authors' comments are always visible; anonymous
		// ones only once approved.
		query = query.Where("user_id > 0 OR approved = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var comments []*domain.Comment
	err := query.Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) CreateWithCount(comment *domain.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if !comment.Approved {
			return nil
		}
		return adjustCommentCount(tx, comment.MemoID, +1)
	})
}

func (r *commentRepository) DeleteWithCount(comment *domain.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", comment.ID).Delete(&domain.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 || !comment.Approved {
			return nil
		}
		return adjustCommentCount(tx, comment.MemoID, -1)
	})
}

func (r *commentRepository) Approve(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment domain.Comment
		if err := tx.Where("id = ?", id).First(&comment).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.Comment{}).
			Where("id = ? AND approved = ?", id, false).
			Update("approved", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return adjustCommentCount(tx, comment.MemoID, +1)
	})
}

func (r *commentRepository) ApproveByMemo(memoID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Comment{}).
			Where("memo_id = ? AND approved = ?", memoID, false).
			Update("approved", true)
		if result.Error != nil {
			return result.Error
		}

		for i := int64(0); i < result.RowsAffected; i++ {
			if err := adjustCommentCount(tx, memoID, +1); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *commentRepository) CountMentioned(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Comment{}).
		Where("mentioned_user_id LIKE ?", mention.Pattern(userID)).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountUnreadMentioned(userID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Comment{}).
		Where("mentioned_user_id LIKE ? AND created_at > ?", mention.Pattern(userID), since).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountByAuthor(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Comment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
