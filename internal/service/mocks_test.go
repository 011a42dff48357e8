package service

import (
	"context"
	"time"

	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(id int64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByDisplayName(displayName string) (*domain.User, error) {
	args := m.Called(displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindAdmin() (*domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Watermark(userID int64) (*time.Time, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockUserRepository) MarkMentionedRead(userID int64, at time.Time) error {
	args := m.Called(userID, at)
	return args.Error(0)
}

// MockMemoRepository is a mock implementation of MemoRepository. The
// db field backs DB() so services can still open real transactions
// around mocked calls; WithTx hands back the same mock.
type MockMemoRepository struct {
	mock.Mock
	db *gorm.DB
}

func (m *MockMemoRepository) DB() *gorm.DB {
	return m.db
}

func (m *MockMemoRepository) WithTx(tx *gorm.DB) repository.MemoRepository {
	return m
}

func (m *MockMemoRepository) FindByID(id int64) (*domain.Memo, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoRepository) Create(memo *domain.Memo) error {
	args := m.Called(memo)
	return args.Error(0)
}

func (m *MockMemoRepository) Update(memo *domain.Memo) error {
	args := m.Called(memo)
	return args.Error(0)
}

func (m *MockMemoRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMemoRepository) SetStatus(id int64, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockMemoRepository) List(filter repository.MemoListFilter) ([]*domain.Memo, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Memo), args.Get(1).(int64), args.Error(2)
}

func (m *MockMemoRepository) ListByTag(ownerID int64, tag string) ([]*domain.Memo, error) {
	args := m.Called(ownerID, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Memo), args.Error(1)
}

func (m *MockMemoRepository) CountByUser(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemoRepository) CountByDay(userID int64, begin, end time.Time) ([]domain.DailyCount, error) {
	args := m.Called(userID, begin, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyCount), args.Error(1)
}

func (m *MockMemoRepository) IncrementViewCount(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindByID(id int64) (*domain.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByMemo(memoID int64, page, limit int, includeUnapproved bool) ([]*domain.Comment, int64, error) {
	args := m.Called(memoID, page, limit, includeUnapproved)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) CreateWithCount(comment *domain.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteWithCount(comment *domain.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Approve(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCommentRepository) ApproveByMemo(memoID int64) error {
	args := m.Called(memoID)
	return args.Error(0)
}

func (m *MockCommentRepository) CountMentioned(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountUnreadMentioned(userID int64, since time.Time) (int64, error) {
	args := m.Called(userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountByAuthor(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRelationRepository is a mock implementation of RelationRepository
type MockRelationRepository struct {
	mock.Mock
}

func (m *MockRelationRepository) Exists(userID, memoID int64, favType string) (bool, error) {
	args := m.Called(userID, memoID, favType)
	return args.Bool(0), args.Error(1)
}

func (m *MockRelationRepository) CreateWithCount(rel *domain.UserMemoRelation) error {
	args := m.Called(rel)
	return args.Error(0)
}

func (m *MockRelationRepository) RemoveWithCount(userID, memoID int64, favType string) error {
	args := m.Called(userID, memoID, favType)
	return args.Error(0)
}

func (m *MockRelationRepository) CountByUserAndType(userID int64, favType string) (int64, error) {
	args := m.Called(userID, favType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRelationRepository) ListMemoIDsByUserAndType(userID int64, favType string) ([]int64, error) {
	args := m.Called(userID, favType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByName(ownerID int64, name string) (*domain.Tag, error) {
	args := m.Called(ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) FindOrCreate(ownerID int64, name string) (*domain.Tag, error) {
	args := m.Called(ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) AdjustMemoCount(ownerID int64, name string, delta int) error {
	args := m.Called(ownerID, name, delta)
	return args.Error(0)
}

func (m *MockTagRepository) ListByUser(ownerID int64) ([]*domain.Tag, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) CountByUser(ownerID int64) (int64, error) {
	args := m.Called(ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagRepository) Rename(ownerID int64, oldName, newName string) error {
	args := m.Called(ownerID, oldName, newName)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ownerID int64, name string) error {
	args := m.Called(ownerID, name)
	return args.Error(0)
}

func (m *MockTagRepository) WithTx(tx *gorm.DB) repository.TagRepository {
	return m
}

// MockCacheService is a mock implementation of cache.Service
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheService) GetSysConfig(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) SetSysConfig(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateSysConfig(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) GetUser(ctx context.Context, userID int64, dest interface{}) error {
	args := m.Called(ctx, userID, dest)
	return args.Error(0)
}

func (m *MockCacheService) SetUser(ctx context.Context, userID int64, data interface{}) error {
	args := m.Called(ctx, userID, data)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSysConfigService is a mock implementation of SysConfigService
type MockSysConfigService struct {
	mock.Mock
}

func (m *MockSysConfigService) GetBool(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockSysConfigService) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSysConfigService) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSysConfigService) All() ([]*domain.SysConfig, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SysConfig), args.Error(1)
}
