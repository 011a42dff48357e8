package service

import (
	"context"
	"fmt"
	"time"

	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
)

const feedSize = 20

// FeedService renders the latest public memos as an RSS channel. The
// channel metadata comes from the WEBSITE_TITLE and DOMAIN settings
// plus the admin's bio.
type FeedService interface {
	BuildFeed(ctx context.Context) (*domain.Feed, error)
}

type feedService struct {
	memoRepo  repository.MemoRepository
	userRepo  repository.UserRepository
	sysConfig SysConfigService
}

// NewFeedService creates a new FeedService
func NewFeedService(memoRepo repository.MemoRepository, userRepo repository.UserRepository, sysConfig SysConfigService) FeedService {
	return &feedService{memoRepo: memoRepo, userRepo: userRepo, sysConfig: sysConfig}
}

func (s *feedService) BuildFeed(ctx context.Context) (*domain.Feed, error) {
	title, err := s.sysConfig.Get(ctx, domain.ConfigWebsiteTitle)
	if err != nil {
		return nil, err
	}
	base, err := s.sysConfig.Get(ctx, domain.ConfigDomain)
	if err != nil {
		return nil, err
	}

	// The channel description is the admin's bio; a missing admin
	// leaves it empty rather than failing the feed.
	var description string
	if admin, err := s.userRepo.FindAdmin(); err == nil {
		description = admin.Bio
	}

	memos, _, err := s.memoRepo.List(repository.MemoListFilter{
		Visibility: []string{domain.VisibilityPublic},
		Page:       1,
		Limit:      feedSize,
	})
	if err != nil {
		return nil, err
	}

	authors := make(map[int64]string)
	items := make([]domain.FeedItem, 0, len(memos))
	for _, memo := range memos {
		author, ok := authors[memo.UserID]
		if !ok {
			if owner, err := s.userRepo.FindByID(memo.UserID); err == nil {
				author = owner.DisplayName
			}
			authors[memo.UserID] = author
		}

		link := fmt.Sprintf("%s/memo/%d", base, memo.ID)
		items = append(items, domain.FeedItem{
			Title:       truncateRunes(memo.Content, 20),
			Link:        link,
			GUID:        domain.FeedGUID{IsPermaLink: true, Value: link},
			Description: memo.Content,
			Author:      author,
			PubDate:     memo.CreatedAt.UTC().Format(time.RFC1123Z),
			Categories:  memo.TagList(),
		})
	}

	return &domain.Feed{
		Version: "2.0",
		Channel: domain.FeedChannel{
			Title:       title,
			Link:        base,
			Description: description,
			Items:       items,
		},
	}, nil
}

func truncateRunes(input string, max int) string {
	runes := []rune(input)
	if len(runes) <= max {
		return input
	}
	return string(runes[:max])
}
