// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"agriconnect/internal/cache"
	"agriconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForumRepository defines persistence operations for forums and memberships.
type ForumRepository interface {
	Create(ctx context.Context, forum *models.Forum) error
	GetByID(ctx context.Context, id uint) (*models.Forum, error)
	GetBySlug(ctx context.Context, slug string) (*models.Forum, error)
	List(ctx context.Context, limit, offset int) ([]models.Forum, error)
	IsMember(ctx context.Context, userID, forumID uint) (bool, error)
	Follow(ctx context.Context, userID, forumID uint) error
	Unfollow(ctx context.Context, userID, forumID uint) error
	ListMemberships(ctx context.Context, userID uint) ([]models.ForumMembership, error)
	MemberCount(ctx context.Context, forumID uint) (int64, error)
}

type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository returns a new ForumRepository implementation.
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

// Create inserts the forum and the creator's owner membership in a single
// transaction, so a forum never exists without its owner following it.
func (r *forumRepository) Create(ctx context.Context, forum *models.Forum) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(forum).Error; err != nil {
			return err
		}
		membership := models.ForumMembership{
			ForumID: forum.ID,
			UserID:  forum.CreatedByUserID,
			Role:    models.ForumMembershipRoleOwner,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("A forum with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *forumRepository) GetByID(ctx context.Context, id uint) (*models.Forum, error) {
	var forum models.Forum
	if err := r.db.WithContext(ctx).First(&forum, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Forum", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &forum, nil
}

func (r *forumRepository) GetBySlug(ctx context.Context, slug string) (*models.Forum, error) {
	var forum models.Forum
	err := cache.Aside(ctx, cache.ForumKey(slug), &forum, cache.ForumTTL, func() error {
		if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&forum).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Forum", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &forum, nil
}

func (r *forumRepository) List(ctx context.Context, limit, offset int) ([]models.Forum, error) {
	var forums []models.Forum
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&forums).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return forums, nil
}

func (r *forumRepository) IsMember(ctx context.Context, userID, forumID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ForumMembership{}).
		Where("forum_id = ? AND user_id = ?", forumID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *forumRepository) Follow(ctx context.Context, userID, forumID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "forum_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&models.ForumMembership{
			ForumID: forumID,
			UserID:  userID,
			Role:    models.ForumMembershipRoleMember,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *forumRepository) Unfollow(ctx context.Context, userID, forumID uint) error {
	err := r.db.WithContext(ctx).
		Where("forum_id = ? AND user_id = ?", forumID, userID).
		Delete(&models.ForumMembership{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *forumRepository) ListMemberships(ctx context.Context, userID uint) ([]models.ForumMembership, error) {
	var memberships []models.ForumMembership
	if err := r.db.WithContext(ctx).
		Preload("Forum").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&memberships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return memberships, nil
}

func (r *forumRepository) MemberCount(ctx context.Context, forumID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ForumMembership{}).
		Where("forum_id = ?", forumID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
