package service

import (
	"context"
	"errors"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
	"gorm.io/gorm"
)

// RelationService handles typed user-memo relations. LIKE relations
// drive the memo's like_count; the (user, memo, type) uniqueness
// invariant means toggling can never double count.
type RelationService interface {
	UpdateRelation(ctx context.Context, userID int64, req *domain.RelationRequest) error
	HasRelation(userID, memoID int64, favType string) (bool, error)
}

type relationService struct {
	relationRepo repository.RelationRepository
	memoRepo     repository.MemoRepository
	sysConfig    SysConfigService
}

// NewRelationService creates a new RelationService
func NewRelationService(
	relationRepo repository.RelationRepository,
	memoRepo repository.MemoRepository,
	sysConfig SysConfigService,
) RelationService {
	return &relationService{
		relationRepo: relationRepo,
		memoRepo:     memoRepo,
		sysConfig:    sysConfig,
	}
}

func (s *relationService) UpdateRelation(ctx context.Context, userID int64, req *domain.RelationRequest) error {
	if req.Type == domain.RelationLike {
		openLike, err := s.sysConfig.GetBool(ctx, domain.ConfigOpenLike)
		if err != nil {
			return err
		}
		if !openLike {
			return common.ErrLikeDisabled
		}
	}

	switch req.OperateType {
	case domain.RelationOpAdd:
		if _, err := s.memoRepo.FindByID(req.MemoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrMemoNotFound
			}
			return err
		}
		rel := &domain.UserMemoRelation{
			MemoID:  req.MemoID,
			UserID:  userID,
			FavType: req.Type,
		}
		return s.relationRepo.CreateWithCount(rel)

	case domain.RelationOpRemove:
		return s.relationRepo.RemoveWithCount(userID, req.MemoID, req.Type)

	default:
		return common.ErrInvalidInput
	}
}

func (s *relationService) HasRelation(userID, memoID int64, favType string) (bool, error) {
	return s.relationRepo.Exists(userID, memoID, favType)
}
