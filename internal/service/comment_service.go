package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/mention"
	"github.com/memonote/memonote-backend/internal/repository"
	"gorm.io/gorm"
)

// mentionPattern extracts "@displayName" tokens from comment content.
var mentionPattern = regexp.MustCompile(`@([^\s@,]+)`)

// CommentService handles comment business logic, including mention
// extraction/encoding and the approved-comments-count policy: only
// approved comments contribute to the parent memo's comment_count.
type CommentService interface {
	AddComment(ctx context.Context, req *domain.AddCommentRequest, authorID int64) (*domain.CommentResponse, error)
	ListComments(req *domain.ListCommentRequest, isAdmin bool) ([]*domain.CommentResponse, int64, error)
	DeleteComment(id int64, actorID int64) error
	ApproveComment(id int64) error
	ApproveByMemo(memoID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	memoRepo    repository.MemoRepository
	userRepo    repository.UserRepository
	sysConfig   SysConfigService
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	memoRepo repository.MemoRepository,
	userRepo repository.UserRepository,
	sysConfig SysConfigService,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		memoRepo:    memoRepo,
		userRepo:    userRepo,
		sysConfig:   sysConfig,
	}
}

// AddComment creates a comment. Registered authors' comments are
// approved immediately; anonymous comments follow the COMMENT_APPROVED
// toggle. The insert and the comment_count increment commit together.
func (s *commentService) AddComment(ctx context.Context, req *domain.AddCommentRequest, authorID int64) (*domain.CommentResponse, error) {
	memo, err := s.memoRepo.FindByID(req.MemoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemoNotFound
		}
		return nil, err
	}

	openComment, err := s.sysConfig.GetBool(ctx, domain.ConfigOpenComment)
	if err != nil {
		return nil, err
	}
	if !openComment || !memo.EnableComment {
		return nil, common.ErrCommentDisabled
	}

	comment := &domain.Comment{
		MemoID:  req.MemoID,
		Content: req.Content,
	}

	if authorID > 0 {
		author, err := s.userRepo.FindByID(authorID)
		if err != nil {
			return nil, common.ErrUserNotFound
		}
		comment.UserID = author.ID
		comment.UserName = author.DisplayName
		if comment.UserName == "" {
			comment.UserName = author.Username
		}
		comment.Approved = true
	} else {
		anonymous, err := s.sysConfig.GetBool(ctx, domain.ConfigAnonymousComment)
		if err != nil {
			return nil, err
		}
		if !anonymous {
			return nil, common.ErrAnonymousBlocked
		}

		needsApproval, err := s.sysConfig.GetBool(ctx, domain.ConfigCommentApproved)
		if err != nil {
			return nil, err
		}
		comment.UserID = -1
		comment.UserName = req.Username
		comment.Email = req.Email
		comment.Link = req.Link
		comment.Approved = !needsApproval
	}

	names, ids, err := s.resolveMentions(req.Content)
	if err != nil {
		return nil, err
	}
	comment.Mentioned = strings.Join(names, ",")
	comment.MentionedUserID, err = mention.Encode(ids)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.CreateWithCount(comment); err != nil {
		return nil, err
	}

	return comment.ToResponse(), nil
}

// resolveMentions extracts @displayName tokens and resolves them
// against the user table. Unknown names are skipped; resolved ids are
// deduplicated while keeping first-occurrence order.
func (s *commentService) resolveMentions(content string) ([]string, []int64, error) {
	var names []string
	var ids []int64
	seen := make(map[int64]bool)

	for _, match := range mentionPattern.FindAllStringSubmatch(content, -1) {
		displayName := match[1]
		user, err := s.userRepo.FindByDisplayName(displayName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, nil, err
		}
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true
		names = append(names, displayName)
		ids = append(ids, user.ID)
	}
	return names, ids, nil
}

func (s *commentService) ListComments(req *domain.ListCommentRequest, isAdmin bool) ([]*domain.CommentResponse, int64, error) {
	comments, total, err := s.commentRepo.ListByMemo(req.MemoID, req.Page, req.Limit, isAdmin)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*domain.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = comment.ToResponse()
	}
	return responses, total, nil
}

// DeleteComment removes a comment. Only the parent memo's owner or an
// admin may delete; the counted decrement travels with the delete.
func (s *commentService) DeleteComment(id int64, actorID int64) error {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return common.ErrUserNotFound
	}

	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}

	if !actor.IsAdmin() {
		memo, err := s.memoRepo.FindByID(comment.MemoID)
		if err != nil {
			// A vanished parent memo is a benign race; only the
			// comment's own author may still clean up the orphan.
			if comment.UserID != actor.ID {
				return common.ErrForbidden
			}
		} else if memo.UserID != actor.ID {
			return common.ErrForbidden
		}
	}

	return s.commentRepo.DeleteWithCount(comment)
}

func (s *commentService) ApproveComment(id int64) error {
	if _, err := s.commentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCommentNotFound
		}
		return err
	}
	return s.commentRepo.Approve(id)
}

func (s *commentService) ApproveByMemo(memoID int64) error {
	return s.commentRepo.ApproveByMemo(memoID)
}
