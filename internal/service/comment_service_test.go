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

func newCommentServiceWithMocks() (CommentService, *MockCommentRepository, *MockMemoRepository, *MockUserRepository, *MockSysConfigService) {
	commentRepo := new(MockCommentRepository)
	memoRepo := new(MockMemoRepository)
	userRepo := new(MockUserRepository)
	sysConfig := new(MockSysConfigService)
	svc := NewCommentService(commentRepo, memoRepo, userRepo, sysConfig)
	return svc, commentRepo, memoRepo, userRepo, sysConfig
}

func TestAddCommentMemoNotFound(t *testing.T) {
	svc, _, memoRepo, _, _ := newCommentServiceWithMocks()

	memoRepo.On("FindByID", int64(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.AddComment(context.Background(), &domain.AddCommentRequest{MemoID: 1, Content: "hi"}, 2)
	assert.ErrorIs(t, err, common.ErrMemoNotFound)
}

func TestAddCommentGloballyDisabled(t *testing.T) {
	svc, _, memoRepo, _, sysConfig := newCommentServiceWithMocks()

	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1, EnableComment: true}, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenComment).Return(false, nil)

	_, err := svc.AddComment(context.Background(), &domain.AddCommentRequest{MemoID: 1, Content: "hi"}, 2)
	assert.ErrorIs(t, err, common.ErrCommentDisabled)
}

func TestAddCommentDisabledOnMemo(t *testing.T) {
	svc, _, memoRepo, _, sysConfig := newCommentServiceWithMocks()

	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1, EnableComment: false}, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenComment).Return(true, nil)

	_, err := svc.AddComment(context.Background(), &domain.AddCommentRequest{MemoID: 1, Content: "hi"}, 2)
	assert.ErrorIs(t, err, common.ErrCommentDisabled)
}

func TestAddCommentResolvesMentions(t *testing.T) {
	svc, commentRepo, memoRepo, userRepo, sysConfig := newCommentServiceWithMocks()

	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1, EnableComment: true}, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenComment).Return(true, nil)
	userRepo.On("FindByID", int64(2)).Return(&domain.User{ID: 2, Username: "bob", DisplayName: "Bobby"}, nil)
	userRepo.On("FindByDisplayName", "Alice").Return(&domain.User{ID: 7, DisplayName: "Alice"}, nil)
	userRepo.On("FindByDisplayName", "Carol").Return(&domain.User{ID: 9, DisplayName: "Carol"}, nil)
	userRepo.On("FindByDisplayName", "Ghost").Return(nil, gorm.ErrRecordNotFound)

	commentRepo.On("CreateWithCount", mock.MatchedBy(func(c *domain.Comment) bool {
		return c.Mentioned == "Alice,Carol" &&
			c.MentionedUserID == "#7,#9," &&
			c.Approved &&
			c.UserName == "Bobby"
	})).Return(nil)

	resp, err := svc.AddComment(context.Background(), &domain.AddCommentRequest{
		MemoID:  1,
		Content: "cc @Alice @Ghost @Carol also @Alice again",
	}, 2)
	assert.NoError(t, err)
	assert.NotNil(t, resp)
	commentRepo.AssertExpectations(t)
}

func TestAddCommentAnonymousBlocked(t *testing.T) {
	svc, _, memoRepo, _, sysConfig := newCommentServiceWithMocks()

	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1, EnableComment: true}, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenComment).Return(true, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigAnonymousComment).Return(false, nil)

	_, err := svc.AddComment(context.Background(), &domain.AddCommentRequest{MemoID: 1, Content: "hi", Username: "guest"}, 0)
	assert.ErrorIs(t, err, common.ErrAnonymousBlocked)
}

func TestAddCommentAnonymousNeedsApproval(t *testing.T) {
	svc, commentRepo, memoRepo, _, sysConfig := newCommentServiceWithMocks()

	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1, EnableComment: true}, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigOpenComment).Return(true, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigAnonymousComment).Return(true, nil)
	sysConfig.On("GetBool", mock.Anything, domain.ConfigCommentApproved).Return(true, nil)

	commentRepo.On("CreateWithCount", mock.MatchedBy(func(c *domain.Comment) bool {
		return c.UserID == -1 && c.UserName == "guest" && !c.Approved
	})).Return(nil)

	resp, err := svc.AddComment(context.Background(), &domain.AddCommentRequest{MemoID: 1, Content: "hi", Username: "guest"}, 0)
	assert.NoError(t, err)
	assert.False(t, resp.Approved)
	commentRepo.AssertExpectations(t)
}

func TestDeleteCommentByMemoOwner(t *testing.T) {
	svc, commentRepo, memoRepo, userRepo, _ := newCommentServiceWithMocks()

	comment := &domain.Comment{ID: 5, MemoID: 1, UserID: 3, Approved: true}
	userRepo.On("FindByID", int64(2)).Return(&domain.User{ID: 2, Role: domain.RoleUser}, nil)
	commentRepo.On("FindByID", int64(5)).Return(comment, nil)
	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1, UserID: 2}, nil)
	commentRepo.On("DeleteWithCount", comment).Return(nil)

	assert.NoError(t, svc.DeleteComment(5, 2))
	commentRepo.AssertExpectations(t)
}

func TestDeleteCommentForbidden(t *testing.T) {
	svc, commentRepo, memoRepo, userRepo, _ := newCommentServiceWithMocks()

	comment := &domain.Comment{ID: 5, MemoID: 1, UserID: 3}
	userRepo.On("FindByID", int64(4)).Return(&domain.User{ID: 4, Role: domain.RoleUser}, nil)
	commentRepo.On("FindByID", int64(5)).Return(comment, nil)
	memoRepo.On("FindByID", int64(1)).Return(&domain.Memo{ID: 1, UserID: 2}, nil)

	assert.ErrorIs(t, svc.DeleteComment(5, 4), common.ErrForbidden)
	commentRepo.AssertNotCalled(t, "DeleteWithCount", mock.Anything)
}

func TestDeleteCommentAdmin(t *testing.T) {
	svc, commentRepo, _, userRepo, _ := newCommentServiceWithMocks()

	comment := &domain.Comment{ID: 5, MemoID: 1, UserID: 3}
	userRepo.On("FindByID", int64(9)).Return(&domain.User{ID: 9, Role: domain.RoleAdmin}, nil)
	commentRepo.On("FindByID", int64(5)).Return(comment, nil)
	commentRepo.On("DeleteWithCount", comment).Return(nil)

	assert.NoError(t, svc.DeleteComment(5, 9))
}

func TestDeleteOrphanCommentOnlyByAuthor(t *testing.T) {
	svc, commentRepo, memoRepo, userRepo, _ := newCommentServiceWithMocks()

	comment := &domain.Comment{ID: 5, MemoID: 1, UserID: 3}
	commentRepo.On("FindByID", int64(5)).Return(comment, nil)
	memoRepo.On("FindByID", int64(1)).Return(nil, gorm.ErrRecordNotFound)

	// The comment's author may clean up after the memo vanished.
	userRepo.On("FindByID", int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleUser}, nil)
	commentRepo.On("DeleteWithCount", comment).Return(nil)
	assert.NoError(t, svc.DeleteComment(5, 3))

	// Anyone else may not.
	userRepo.On("FindByID", int64(4)).Return(&domain.User{ID: 4, Role: domain.RoleUser}, nil)
	assert.ErrorIs(t, svc.DeleteComment(5, 4), common.ErrForbidden)
}
