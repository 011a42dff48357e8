package repository

import (
	"errors"
	"time"

	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/mention"
	"gorm.io/gorm"
)

// MemoListFilter narrows List results
type MemoListFilter struct {
	OwnerID    int64 // 0 = any owner
	ViewerID   int64 // 0 = anonymous; used for liked/commented/mentioned filters
	VisibleTo  int64 // restrict to memos this viewer may see in lists
	Tag        string
	Visibility []string
	Liked      bool
	Commented  bool
	Mentioned  bool
	Page       int
	Limit      int
}

// MemoRepository defines memo data access.
// The counter adjustment methods are the only writers of the
// denormalized comment/like/view counts; every decrement is guarded so
// counters never go below zero, and an adjustment against a vanished
// memo updates zero rows and reports success (benign race).
type MemoRepository interface {
	FindByID(id int64) (*domain.Memo, error)
	Create(memo *domain.Memo) error
	Update(memo *domain.Memo) error
	Delete(id int64) error
	SetStatus(id int64, status string) error
	List(filter MemoListFilter) ([]*domain.Memo, int64, error)

	// ListByTag returns every memo of the owner whose tag list matches
	// the tag, archived memos included. Callers must still check exact
	// TagList membership; the LIKE match also hits memos where the tag
	// is only a suffix of a longer tag name.
	ListByTag(ownerID int64, tag string) ([]*domain.Memo, error)
	CountByUser(userID int64) (int64, error)
	CountByDay(userID int64, begin, end time.Time) ([]domain.DailyCount, error)

	IncrementViewCount(id int64) error

	// DB exposes the underlying handle so services can group writes
	// into one transaction; WithTx rebinds the repository to it.
	DB() *gorm.DB
	WithTx(tx *gorm.DB) MemoRepository
}

type memoRepository struct {
	db *gorm.DB
}

// NewMemoRepository creates a new MemoRepository
func NewMemoRepository(db *gorm.DB) MemoRepository {
	return &memoRepository{db: db}
}

func (r *memoRepository) DB() *gorm.DB {
	return r.db
}

func (r *memoRepository) WithTx(tx *gorm.DB) MemoRepository {
	return &memoRepository{db: tx}
}

func (r *memoRepository) FindByID(id int64) (*domain.Memo, error) {
	var memo domain.Memo
	err := r.db.Where("id = ?", id).First(&memo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &memo, nil
}

func (r *memoRepository) Create(memo *domain.Memo) error {
	return r.db.Create(memo).Error
}

func (r *memoRepository) Update(memo *domain.Memo) error {
	return r.db.Save(memo).Error
}

func (r *memoRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("memo_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("memo_id = ?", id).Delete(&domain.UserMemoRelation{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Memo{}).Error
	})
}

func (r *memoRepository) SetStatus(id int64, status string) error {
	return r.db.Model(&domain.Memo{}).Where("id = ?", id).Update("status", status).Error
}

func (r *memoRepository) List(filter MemoListFilter) ([]*domain.Memo, int64, error) {
	query := r.db.Model(&domain.Memo{}).Where("status = ?", domain.StatusNormal)

	if filter.OwnerID > 0 {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if len(filter.Visibility) > 0 {
		query = query.Where("visibility IN ?", filter.Visibility)
	}
	if filter.VisibleTo > 0 {
		// Listings show everyone's public and unlisted memos; private
		// memos only surface for their owner.
		query = query.Where("visibility IN ? OR user_id = ?",
			[]string{domain.VisibilityPublic, domain.VisibilityUnlisted}, filter.VisibleTo)
	}
	if filter.Tag != "" {
		// Tags are stored "tag1,tag2,". The trailing comma keeps this
		// pattern from matching prefixes of longer tag names.
		query = query.Where("tags LIKE ?", "%"+filter.Tag+",%")
	}
	if filter.Liked && filter.ViewerID > 0 {
		query = query.Where(
			"id IN (SELECT memo_id FROM t_user_memo_relation WHERE user_id = ? AND fav_type = ?)",
			filter.ViewerID, domain.RelationLike)
	}
	if filter.Commented && filter.ViewerID > 0 {
		query = query.Where("id IN (SELECT memo_id FROM t_comment WHERE user_id = ?)", filter.ViewerID)
	}
	if filter.Mentioned && filter.ViewerID > 0 {
		query = query.Where(
			"id IN (SELECT memo_id FROM t_comment WHERE mentioned_user_id LIKE ?)",
			mention.Pattern(filter.ViewerID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var memos []*domain.Memo
	err := query.Order("priority DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&memos).Error
	if err != nil {
		return nil, 0, err
	}
	return memos, total, nil
}

func (r *memoRepository) ListByTag(ownerID int64, tag string) ([]*domain.Memo, error) {
	var memos []*domain.Memo
	err := r.db.Where("user_id = ? AND tags LIKE ?", ownerID, "%"+tag+",%").
		Find(&memos).Error
	return memos, err
}

func (r *memoRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Memo{}).
		Where("user_id = ? AND status = ?", userID, domain.StatusNormal).
		Count(&count).Error
	return count, err
}

// CountByDay buckets the user's memos by creation day inside the
// given range, newest day first. Days without memos produce no row.
func (r *memoRepository) CountByDay(userID int64, begin, end time.Time) ([]domain.DailyCount, error) {
	var rows []domain.DailyCount
	err := r.db.Model(&domain.Memo{}).
		Select("DATE(created_at) AS date, COUNT(1) AS total").
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, begin, end).
		Group("DATE(created_at)").
		Order("DATE(created_at) DESC").
		Scan(&rows).Error
	return rows, err
}

// IncrementViewCount bumps view_count unconditionally. Every view
// counts; a missing memo updates zero rows and is not an error.
func (r *memoRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&domain.Memo{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// adjustCommentCount applies a single-step comment_count change inside
// the given transaction. Decrements are guarded at zero.
func adjustCommentCount(tx *gorm.DB, memoID int64, delta int) error {
	if delta > 0 {
		return tx.Model(&domain.Memo{}).
			Where("id = ?", memoID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	}
	return tx.Model(&domain.Memo{}).
		Where("id = ? AND comment_count >= 1", memoID).
		UpdateColumn("comment_count", gorm.Expr("comment_count - 1")).Error
}

// adjustLikeCount applies a single-step like_count change inside the
// given transaction. Decrements are guarded at zero.
func adjustLikeCount(tx *gorm.DB, memoID int64, delta int) error {
	if delta > 0 {
		return tx.Model(&domain.Memo{}).
			Where("id = ?", memoID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	}
	return tx.Model(&domain.Memo{}).
		Where("id = ? AND like_count >= 1", memoID).
		UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
}
