package service

import (
	"time"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
)

// StatisticsService computes the per-user dashboard snapshot. Every
// value is recomputed on each call; nothing is cached across writes.
type StatisticsService interface {
	Snapshot(userID int64) (*domain.StatisticsResponse, error)

	// Heatmap buckets the user's memo creations per day inside the
	// range. Zero begin/end fall back to the last 50 days through
	// tomorrow.
	Heatmap(userID int64, begin, end time.Time) (*domain.HeatmapResponse, error)

	// MarkMentionedRead advances the unread-mention watermark to the
	// given instant. Earlier timestamps are ignored.
	MarkMentionedRead(userID int64, at time.Time) error
}

type statisticsService struct {
	memoRepo     repository.MemoRepository
	commentRepo  repository.CommentRepository
	relationRepo repository.RelationRepository
	userRepo     repository.UserRepository
	tagRepo      repository.TagRepository
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(
	memoRepo repository.MemoRepository,
	commentRepo repository.CommentRepository,
	relationRepo repository.RelationRepository,
	userRepo repository.UserRepository,
	tagRepo repository.TagRepository,
) StatisticsService {
	return &statisticsService{
		memoRepo:     memoRepo,
		commentRepo:  commentRepo,
		relationRepo: relationRepo,
		userRepo:     userRepo,
		tagRepo:      tagRepo,
	}
}

func (s *statisticsService) Snapshot(userID int64) (*domain.StatisticsResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, common.ErrUserNotFound
	}

	totalMemos, err := s.memoRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	liked, err := s.relationRepo.CountByUserAndType(userID, domain.RelationLike)
	if err != nil {
		return nil, err
	}

	mentioned, err := s.commentRepo.CountMentioned(userID)
	if err != nil {
		return nil, err
	}

	commented, err := s.commentRepo.CountByAuthor(userID)
	if err != nil {
		return nil, err
	}

	// A never-set watermark means every mention is unread. The codepath
	// branches on absence instead of comparing against a sentinel time.
	watermark, err := s.userRepo.Watermark(userID)
	if err != nil {
		return nil, err
	}

	var unreadMentioned int64
	if watermark == nil {
		unreadMentioned = mentioned
	} else {
		unreadMentioned, err = s.commentRepo.CountUnreadMentioned(userID, *watermark)
		if err != nil {
			return nil, err
		}
	}

	return &domain.StatisticsResponse{
		TotalMemos:      totalMemos,
		Liked:           liked,
		Mentioned:       mentioned,
		Commented:       commented,
		UnreadMentioned: unreadMentioned,
	}, nil
}

func (s *statisticsService) Heatmap(userID int64, begin, end time.Time) (*domain.HeatmapResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	if begin.IsZero() {
		begin = time.Now().AddDate(0, 0, -50)
	}
	if end.IsZero() {
		end = time.Now().AddDate(0, 0, 1)
	}
	if end.Before(begin) {
		return nil, common.ErrInvalidInput
	}

	totalMemos, err := s.memoRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	totalTags, err := s.tagRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.memoRepo.CountByDay(userID, begin, end)
	if err != nil {
		return nil, err
	}

	return &domain.HeatmapResponse{
		TotalMemos: totalMemos,
		TotalDays:  int64(time.Since(user.CreatedAt).Hours() / 24),
		TotalTags:  totalTags,
		Items:      items,
	}, nil
}

func (s *statisticsService) MarkMentionedRead(userID int64, at time.Time) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return common.ErrUserNotFound
	}
	return s.userRepo.MarkMentionedRead(userID, at)
}
