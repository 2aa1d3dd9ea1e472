package service

import (
	"context"
	"strings"

	"agriconnect/internal/cache"
	"agriconnect/internal/middleware"
	"agriconnect/internal/models"
	"agriconnect/internal/repository"
	"agriconnect/internal/validation"
)

type ForumService struct {
	forumRepo repository.ForumRepository
}

type CreateForumInput struct {
	UserID      uint
	Name        string
	Slug        string
	Description string
}

func NewForumService(forumRepo repository.ForumRepository) *ForumService {
	return &ForumService{forumRepo: forumRepo}
}

func (s *ForumService) CreateForum(ctx context.Context, in CreateForumInput) (*models.Forum, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > 120 {
		return nil, models.NewValidationError("Name too long (max 120 characters)")
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = validation.SlugFromName(name)
	}
	if err := validation.ValidateForumSlug(slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	forum := &models.Forum{
		Name:            name,
		Slug:            slug,
		Description:     strings.TrimSpace(in.Description),
		CreatedByUserID: in.UserID,
	}
	if err := s.forumRepo.Create(ctx, forum); err != nil {
		return nil, err
	}
	return forum, nil
}

func (s *ForumService) GetForum(ctx context.Context, slug string) (*models.Forum, error) {
	return s.forumRepo.GetBySlug(ctx, slug)
}

func (s *ForumService) GetForumByID(ctx context.Context, id uint) (*models.Forum, error) {
	return s.forumRepo.GetByID(ctx, id)
}

func (s *ForumService) ListForums(ctx context.Context, limit, offset int) ([]models.Forum, error) {
	return s.forumRepo.List(ctx, limit, offset)
}

// ToggleFollow flips the caller's membership and returns the new state. The
// forum owner may unfollow like anyone else; ownership only affects the role
// written at creation.
func (s *ForumService) ToggleFollow(ctx context.Context, userID, forumID uint) (bool, error) {
	forum, err := s.forumRepo.GetByID(ctx, forumID)
	if err != nil {
		return false, err
	}

	isMember, err := s.forumRepo.IsMember(ctx, userID, forumID)
	if err != nil {
		return false, err
	}

	if isMember {
		err = s.forumRepo.Unfollow(ctx, userID, forumID)
	} else {
		err = s.forumRepo.Follow(ctx, userID, forumID)
	}
	if err != nil {
		return false, err
	}

	state := "followed"
	if isMember {
		state = "unfollowed"
	}
	middleware.FollowToggles.WithLabelValues(state).Inc()
	cache.InvalidateForum(ctx, forum.Slug)

	return !isMember, nil
}

// CanInteract reports whether the user may post, comment, or like inside the
// forum.
func (s *ForumService) CanInteract(ctx context.Context, userID, forumID uint) (bool, error) {
	return s.forumRepo.IsMember(ctx, userID, forumID)
}

func (s *ForumService) ListMyMemberships(ctx context.Context, userID uint) ([]models.ForumMembership, error) {
	return s.forumRepo.ListMemberships(ctx, userID)
}

func (s *ForumService) MemberCount(ctx context.Context, forumID uint) (int64, error) {
	return s.forumRepo.MemberCount(ctx, forumID)
}
