package service

import (
	"context"
	"testing"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newRelationServiceWithMocks() (RelationService, *MockRelationRepository, *MockMemoRepository, *MockSysConfigService) {
	relationRepo := new(MockRelationRepository)
	memoRepo := new(MockMemoRepository)
	sysConfig := new(MockSysConfigService)
	return NewRelationService(relationRepo, memoRepo, sysConfig), relationRepo, memoRepo, sysConfig
}

func TestUpdateRelationAddLike(t *testing.T) {
	svc, relationRepo, memoRepo, sysConfig := newRelationServiceWithMocks()

	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenLike).Return(true, nil)
	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1}, nil)
	relationRepo.On("CreateWithCount", mock.MatchedBy(func(rel *domain.UserMemoRelation) bool {
		return rel.MemoID == 1 && rel.UserID == 7 && rel.FavType == domain.RelationLike
	})).Return(nil)

	err := svc.UpdateRelation(context.Background(), 7, &domain.RelationRequest{
		MemoID: 1, Type: domain.RelationLike, OperateType: domain.RelationOpAdd,
	})
	assert.NoError(t, err)
	relationRepo.AssertExpectations(t)
}

func TestUpdateRelationLikeDisabled(t *testing.T) {
	svc, relationRepo, _, sysConfig := newRelationServiceWithMocks()

	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenLike).Return(false, nil)

	err := svc.UpdateRelation(context.Background(), 7, &domain.RelationRequest{
		MemoID: 1, Type: domain.RelationLike, OperateType: domain.RelationOpAdd,
	})
	assert.ErrorIs(t, err, common.ErrLikeDisabled)
	relationRepo.AssertNotCalled(t, "CreateWithCount", mock.Anything)
}

func TestUpdateRelationFavoriteSkipsLikeToggle(t *testing.T) {
	svc, relationRepo, memoRepo, sysConfig := newRelationServiceWithMocks()

	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1}, nil)
	relationRepo.On("CreateWithCount", mock.Anything).Return(nil)

	err := svc.UpdateRelation(context.Background(), 7, &domain.RelationRequest{
		MemoID: 1, Type: domain.RelationFavorite, OperateType: domain.RelationOpAdd,
	})
	assert.NoError(t, err)
	sysConfig.AssertNotCalled(t, "GetBool", mock.Anything, mock.Anything)
}

func TestUpdateRelationAddMissingMemo(t *testing.T) {
	svc, _, memoRepo, sysConfig := newRelationServiceWithMocks()

	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenLike).Return(true, nil)
	memoRepo.On("FindByID", int64(9)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.UpdateRelation(context.Background(), 7, &domain.RelationRequest{
		MemoID: 9, Type: domain.RelationLike, OperateType: domain.RelationOpAdd,
	})
	assert.ErrorIs(t, err, common.ErrMemoNotFound)
}

func TestUpdateRelationRemove(t *testing.T) {
	svc, relationRepo, memoRepo, sysConfig := newRelationServiceWithMocks()

	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenLike).Return(true, nil)
	relationRepo.On("RemoveWithCount", int64(7), int64(1), domain.RelationLike).Return(nil)

	err := svc.UpdateRelation(context.Background(), 7, &domain.RelationRequest{
		MemoID: 1, Type: domain.RelationLike, OperateType: domain.RelationOpRemove,
	})
	assert.NoError(t, err)
	// Removal never checks memo existence; a vanished memo still unlikes.
	memoRepo.AssertNotCalled(t, "FindByID", mock.Anything)
}
