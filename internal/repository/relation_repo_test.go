package repository

import (
	"testing"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCreateRelationWithCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	memo := createTestMemo(t, db, 1)

	err := repo.CreateWithCount(&domain.UserMemoRelation{
		MemoID: memo.ID, UserID: 2, FavType: domain.RelationLike,
	})
	assert.NoError(t, err)

	_, likeCount := memoCounts(t, db, memo.ID)
	assert.Equal(t, 1, likeCount)

	exists, err := repo.Exists(2, memo.ID, domain.RelationLike)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateRelationDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	memo := createTestMemo(t, db, 1)

	rel := func() *domain.UserMemoRelation {
		return &domain.UserMemoRelation{MemoID: memo.ID, UserID: 2, FavType: domain.RelationLike}
	}
	assert.NoError(t, repo.CreateWithCount(rel()))

	err := repo.CreateWithCount(rel())
	assert.ErrorIs(t, err, common.ErrRelationExists)

	// The rejected duplicate must not have moved the counter.
	_, likeCount := memoCounts(t, db, memo.ID)
	assert.Equal(t, 1, likeCount)
}

func TestFavoriteDoesNotTouchLikeCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	memo := createTestMemo(t, db, 1)

	assert.NoError(t, repo.CreateWithCount(&domain.UserMemoRelation{
		MemoID: memo.ID, UserID: 2, FavType: domain.RelationFavorite,
	}))

	_, likeCount := memoCounts(t, db, memo.ID)
	assert.Equal(t, 0, likeCount)

	// The same user may hold LIKE and FAVORITE on one memo.
	assert.NoError(t, repo.CreateWithCount(&domain.UserMemoRelation{
		MemoID: memo.ID, UserID: 2, FavType: domain.RelationLike,
	}))
	_, likeCount = memoCounts(t, db, memo.ID)
	assert.Equal(t, 1, likeCount)
}

func TestRemoveRelationWithCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	memo := createTestMemo(t, db, 1)

	assert.NoError(t, repo.CreateWithCount(&domain.UserMemoRelation{
		MemoID: memo.ID, UserID: 2, FavType: domain.RelationLike,
	}))

	assert.NoError(t, repo.RemoveWithCount(2, memo.ID, domain.RelationLike))
	_, likeCount := memoCounts(t, db, memo.ID)
	assert.Equal(t, 0, likeCount)

	// Removing a relation that is already gone is a no-op.
	assert.NoError(t, repo.RemoveWithCount(2, memo.ID, domain.RelationLike))
	_, likeCount = memoCounts(t, db, memo.ID)
	assert.Equal(t, 0, likeCount)
}

func TestCountAndListByUserAndType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRelationRepository(db)
	memoA := createTestMemo(t, db, 1)
	memoB := createTestMemo(t, db, 1)

	assert.NoError(t, repo.CreateWithCount(&domain.UserMemoRelation{MemoID: memoA.ID, UserID: 2, FavType: domain.RelationLike}))
	assert.NoError(t, repo.CreateWithCount(&domain.UserMemoRelation{MemoID: memoB.ID, UserID: 2, FavType: domain.RelationLike}))
	assert.NoError(t, repo.CreateWithCount(&domain.UserMemoRelation{MemoID: memoA.ID, UserID: 2, FavType: domain.RelationFavorite}))

	count, err := repo.CountByUserAndType(2, domain.RelationLike)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	ids, err := repo.ListMemoIDsByUserAndType(2, domain.RelationFavorite)
	assert.NoError(t, err)
	assert.Equal(t, []int64{memoA.ID}, ids)
}
