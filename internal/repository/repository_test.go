package repository

import (
	"testing"

	"github.com/memonote/memonote-backend/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Memo{},
		&domain.Comment{},
		&domain.Tag{},
		&domain.UserMemoRelation{},
		&domain.SysConfig{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func createTestMemo(t *testing.T, db *gorm.DB, userID int64) *domain.Memo {
	t.Helper()
	memo := &domain.Memo{
		UserID:        userID,
		Content:       "test memo",
		Visibility:    domain.VisibilityPrivate,
		Status:        domain.StatusNormal,
		EnableComment: true,
	}
	if err := db.Create(memo).Error; err != nil {
		t.Fatalf("failed to create test memo: %v", err)
	}
	return memo
}

func memoCounts(t *testing.T, db *gorm.DB, memoID int64) (commentCount, likeCount int) {
	t.Helper()
	var memo domain.Memo
	if err := db.First(&memo, memoID).Error; err != nil {
		t.Fatalf("failed to reload memo: %v", err)
	}
	return memo.CommentCount, memo.LikeCount
}
