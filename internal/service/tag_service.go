package service

import (
	"errors"

	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/repository"
	"gorm.io/gorm"
)

// TagService reconciles memo tag lists against the per-owner tag
// registry and its denormalized memo counts.
type TagService interface {
	// Sync applies a memo's tag list change: tags in newTags but not
	// oldTags are created if needed and incremented; tags in oldTags
	// but not newTags are decremented (floored at zero); unchanged
	// tags are untouched. Matching is exact and case-sensitive.
	Sync(ownerID int64, oldTags, newTags []string) error

	ListTags(ownerID int64) ([]*domain.TagResponse, error)
	RenameTag(ownerID int64, oldName, newName string) error
	DeleteTag(ownerID int64, name string) error

	// WithTx rebinds the service to a transaction so a memo write and
	// its tag adjustments commit together.
	WithTx(tx *gorm.DB) TagService
}

type tagService struct {
	tagRepo  repository.TagRepository
	memoRepo repository.MemoRepository
}

// NewTagService creates a new TagService
func NewTagService(tagRepo repository.TagRepository, memoRepo repository.MemoRepository) TagService {
	return &tagService{tagRepo: tagRepo, memoRepo: memoRepo}
}

func (s *tagService) WithTx(tx *gorm.DB) TagService {
	return &tagService{tagRepo: s.tagRepo.WithTx(tx), memoRepo: s.memoRepo.WithTx(tx)}
}

func (s *tagService) Sync(ownerID int64, oldTags, newTags []string) error {
	added, removed := diffTags(oldTags, newTags)

	for _, name := range added {
		if _, err := s.tagRepo.FindOrCreate(ownerID, name); err != nil {
			return err
		}
		if err := s.tagRepo.AdjustMemoCount(ownerID, name, +1); err != nil {
			return err
		}
	}

	for _, name := range removed {
		if err := s.tagRepo.AdjustMemoCount(ownerID, name, -1); err != nil {
			return err
		}
	}

	return nil
}

// diffTags computes the set difference in input order, ignoring
// duplicates within each list.
func diffTags(oldTags, newTags []string) (added, removed []string) {
	oldSet := make(map[string]bool, len(oldTags))
	for _, t := range oldTags {
		oldSet[t] = true
	}
	newSet := make(map[string]bool, len(newTags))
	for _, t := range newTags {
		newSet[t] = true
	}

	seen := make(map[string]bool)
	for _, t := range newTags {
		if !oldSet[t] && !seen[t] {
			added = append(added, t)
			seen[t] = true
		}
	}
	seen = make(map[string]bool)
	for _, t := range oldTags {
		if !newSet[t] && !seen[t] {
			removed = append(removed, t)
			seen[t] = true
		}
	}
	return added, removed
}

func (s *tagService) ListTags(ownerID int64) ([]*domain.TagResponse, error) {
	tags, err := s.tagRepo.ListByUser(ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = tag.ToResponse()
	}
	return responses, nil
}

// RenameTag renames a tag and rewrites the tag list of every memo that
// carries it. The tag's memo_count is unaffected.
func (s *tagService) RenameTag(ownerID int64, oldName, newName string) error {
	if newName == "" || oldName == newName {
		return common.ErrInvalidTag
	}
	if _, err := s.tagRepo.FindByName(ownerID, oldName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrTagNotFound
		}
		return err
	}
	if _, err := s.tagRepo.FindByName(ownerID, newName); err == nil {
		return common.ErrTagNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	// The tag row and every memo carrying it are rewritten in one
	// transaction; a failure part-way leaves nothing renamed.
	return s.memoRepo.DB().Transaction(func(tx *gorm.DB) error {
		tagRepo := s.tagRepo.WithTx(tx)
		memoRepo := s.memoRepo.WithTx(tx)

		if err := tagRepo.Rename(ownerID, oldName, newName); err != nil {
			return err
		}

		// One pass over the LIKE matches, archived memos included. The
		// filter also hits memos where oldName is only the tail of a
		// longer tag ("homework" when renaming "work"); the exact
		// element check below skips those.
		memos, err := memoRepo.ListByTag(ownerID, oldName)
		if err != nil {
			return err
		}
		for _, memo := range memos {
			tags := memo.TagList()
			changed := false
			for i, t := range tags {
				if t == oldName {
					tags[i] = newName
					changed = true
				}
			}
			if !changed {
				continue
			}
			memo.Tags = domain.JoinTags(tags)
			if err := memoRepo.Update(memo); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *tagService) DeleteTag(ownerID int64, name string) error {
	if _, err := s.tagRepo.FindByName(ownerID, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrTagNotFound
		}
		return err
	}
	return s.tagRepo.Delete(ownerID, name)
}
