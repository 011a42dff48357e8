package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
	"gorm.io/gorm"
)

// MemoService handles memo business logic. Tags live on the first
// content line as "#tag" tokens; every save parses them, strips them
// out of the stored content and runs the tag synchronizer against the
// memo's previous tag list.
type MemoService interface {
	CreateMemo(userID int64, req *domain.SaveMemoRequest) (*domain.MemoResponse, error)
	UpdateMemo(id, userID int64, req *domain.SaveMemoRequest) (*domain.MemoResponse, error)

	// GetMemo returns a memo visible to the viewer and counts the view.
	GetMemo(id, viewerID int64) (*domain.MemoResponse, error)
	ListMemos(req *domain.ListMemoRequest, viewerID int64) ([]*domain.MemoResponse, int64, error)
	DeleteMemo(id, actorID int64) error
	ArchiveMemo(id, actorID int64) error
	RestoreMemo(id, actorID int64) error
}

type memoService struct {
	memoRepo repository.MemoRepository
	userRepo repository.UserRepository
	tags     TagService
}

// NewMemoService creates a new MemoService
func NewMemoService(memoRepo repository.MemoRepository, userRepo repository.UserRepository, tags TagService) MemoService {
	return &memoService{memoRepo: memoRepo, userRepo: userRepo, tags: tags}
}

func (s *memoService) CreateMemo(userID int64, req *domain.SaveMemoRequest) (*domain.MemoResponse, error) {
	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, common.ErrEmptyMemo
	}
	tags, content := extractTags(req.Content)

	visibility := req.Visibility
	if visibility == "" {
		visibility = owner.DefaultVisibility
	}
	enableComment := owner.DefaultEnableComment
	if req.EnableComment != nil {
		enableComment = *req.EnableComment
	}

	memo := &domain.Memo{
		UserID:        userID,
		Content:       content,
		Tags:          domain.JoinTags(tags),
		Visibility:    visibility,
		Status:        domain.StatusNormal,
		Priority:      req.Priority,
		EnableComment: enableComment,
	}

	// The memo row and its tag count adjustments commit together or
	// not at all.
	err = s.memoRepo.DB().Transaction(func(tx *gorm.DB) error {
		if err := s.memoRepo.WithTx(tx).Create(memo); err != nil {
			return err
		}
		return s.tags.WithTx(tx).Sync(userID, nil, tags)
	})
	if err != nil {
		return nil, err
	}

	return memo.ToResponse(), nil
}

func (s *memoService) UpdateMemo(id, userID int64, req *domain.SaveMemoRequest) (*domain.MemoResponse, error) {
	memo, err := s.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, common.ErrEmptyMemo
	}
	oldTags := memo.TagList()
	tags, content := extractTags(req.Content)

	memo.Content = content
	memo.Tags = domain.JoinTags(tags)
	memo.Priority = req.Priority
	if req.Visibility != "" {
		memo.Visibility = req.Visibility
	}
	if req.EnableComment != nil {
		memo.EnableComment = *req.EnableComment
	}

	err = s.memoRepo.DB().Transaction(func(tx *gorm.DB) error {
		if err := s.memoRepo.WithTx(tx).Update(memo); err != nil {
			return err
		}
		return s.tags.WithTx(tx).Sync(userID, oldTags, tags)
	})
	if err != nil {
		return nil, err
	}

	return memo.ToResponse(), nil
}

func (s *memoService) GetMemo(id, viewerID int64) (*domain.MemoResponse, error) {
	memo, err := s.memoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemoNotFound
		}
		return nil, err
	}

	if memo.Visibility == domain.VisibilityPrivate && memo.UserID != viewerID {
		if viewer, err := s.userRepo.FindByID(viewerID); err != nil || !viewer.IsAdmin() {
			return nil, common.ErrMemoNotFound
		}
	}

	// Every view counts; a concurrent delete makes this a no-op.
	if err := s.memoRepo.IncrementViewCount(id); err != nil {
		return nil, err
	}
	memo.ViewCount++

	return memo.ToResponse(), nil
}

func (s *memoService) ListMemos(req *domain.ListMemoRequest, viewerID int64) ([]*domain.MemoResponse, int64, error) {
	filter := repository.MemoListFilter{
		ViewerID:  viewerID,
		Tag:       req.Tag,
		Liked:     req.Liked,
		Commented: req.Commented,
		Mentioned: req.Mentioned,
		Page:      req.Page,
		Limit:     req.Limit,
	}

	if viewerID > 0 {
		// Logged-in listing is scoped by what the viewer may see, not
		// by ownership: everyone's public and unlisted memos plus the
		// viewer's own private ones.
		filter.VisibleTo = viewerID
		if req.Visibility != "" {
			filter.Visibility = []string{req.Visibility}
		}
	} else {
		filter.Visibility = []string{domain.VisibilityPublic}
	}

	memos, total, err := s.memoRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*domain.MemoResponse, len(memos))
	for i, memo := range memos {
		responses[i] = memo.ToResponse()
	}
	return responses, total, nil
}

// DeleteMemo removes a memo with its comments and relations, then
// releases the memo's tags from the per-tag counts.
func (s *memoService) DeleteMemo(id, actorID int64) error {
	memo, err := s.findOwned(id, actorID)
	if err != nil {
		return err
	}

	return s.memoRepo.DB().Transaction(func(tx *gorm.DB) error {
		if err := s.memoRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		return s.tags.WithTx(tx).Sync(memo.UserID, memo.TagList(), nil)
	})
}

func (s *memoService) ArchiveMemo(id, actorID int64) error {
	if _, err := s.findOwned(id, actorID); err != nil {
		return err
	}
	return s.memoRepo.SetStatus(id, domain.StatusArchived)
}

func (s *memoService) RestoreMemo(id, actorID int64) error {
	if _, err := s.findOwned(id, actorID); err != nil {
		return err
	}
	return s.memoRepo.SetStatus(id, domain.StatusNormal)
}

// findOwned loads a memo and checks the actor owns it or is an admin.
func (s *memoService) findOwned(id, actorID int64) (*domain.Memo, error) {
	memo, err := s.memoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemoNotFound
		}
		return nil, err
	}

	if memo.UserID != actorID {
		actor, err := s.userRepo.FindByID(actorID)
		if err != nil || !actor.IsAdmin() {
			return nil, common.ErrForbidden
		}
	}
	return memo, nil
}

// extractTags parses "#tag" tokens from the first content line,
// removing them from the returned content. Tag names keep their exact
// case; matching elsewhere is case-sensitive.
func extractTags(content string) ([]string, string) {
	if strings.TrimSpace(content) == "" {
		return nil, ""
	}

	lines := strings.Split(content, "\n")
	first := lines[0]

	var tags []string
	seen := make(map[string]bool)
	for _, token := range strings.FieldsFunc(first, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	}) {
		if len(token) > 1 && strings.HasPrefix(token, "#") {
			name := token[1:]
			if !seen[name] {
				tags = append(tags, name)
				seen[name] = true
			}
		}
	}
	if len(tags) == 0 {
		return nil, content
	}

	// Strip tag tokens from the first line; drop it if nothing is left.
	// Longer names go first so "#work" cannot eat into "#workshop".
	stripped := make([]string, len(tags))
	copy(stripped, tags)
	sort.Slice(stripped, func(i, j int) bool { return len(stripped[i]) > len(stripped[j]) })
	for _, name := range stripped {
		first = strings.ReplaceAll(first, "#"+name+",", "")
		first = strings.ReplaceAll(first, "#"+name+" ", "")
		first = strings.ReplaceAll(first, "#"+name, "")
	}
	if strings.TrimSpace(first) == "" {
		lines = lines[1:]
	} else {
		lines[0] = first
	}
	return tags, strings.Join(lines, "\n")
}
