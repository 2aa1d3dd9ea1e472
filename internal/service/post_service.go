package service

import (
	"context"
	"strings"

	"agriconnect/internal/cache"
	"agriconnect/internal/middleware"
	"agriconnect/internal/models"
	"agriconnect/internal/repository"
)

type PostService struct {
	postRepo  repository.PostRepository
	forumRepo repository.ForumRepository
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
	ForumID  *uint
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	ForumID       *uint
}

func NewPostService(
	postRepo repository.PostRepository,
	forumRepo repository.ForumRepository,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		forumRepo: forumRepo,
	}
}

// requireMembership enforces the forum gate: interacting inside a forum
// requires following it. Denials are counted per operation.
func requireMembership(ctx context.Context, forumRepo repository.ForumRepository, userID uint, forumID *uint, operation string) error {
	if forumID == nil {
		return nil
	}
	isMember, err := forumRepo.IsMember(ctx, userID, *forumID)
	if err != nil {
		return err
	}
	if !isMember {
		middleware.GateDenials.WithLabelValues(operation).Inc()
		return models.NewPermissionError("You must follow this forum to interact with it")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxContentLen = 50000

	content := strings.TrimSpace(in.Content)
	imageURL := strings.TrimSpace(in.ImageURL)
	if content == "" && imageURL == "" {
		return nil, models.NewValidationError("Post needs content or an image")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	if in.ForumID != nil {
		if _, err := s.forumRepo.GetByID(ctx, *in.ForumID); err != nil {
			return nil, err
		}
		if err := requireMembership(ctx, s.forumRepo, in.UserID, in.ForumID, "create_post"); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Content:  content,
		ImageURL: imageURL,
		UserID:   in.UserID,
		ForumID:  in.ForumID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	var posts []*models.Post
	var err error

	if in.ForumID == nil && in.Offset == 0 && in.Limit <= 20 {
		// First page of the global feed is served from cache without a viewer,
		// then re-enriched with the current user's liked flags.
		err = cache.Aside(ctx, cache.FeedListKey, &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset, 0)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}

		if in.CurrentUserID != 0 && len(posts) > 0 {
			postIDs := make([]uint, len(posts))
			for i, p := range posts {
				postIDs[i] = p.ID
			}

			likedIDs, err := s.postRepo.GetLikedPostIDs(ctx, in.CurrentUserID, postIDs)
			if err == nil {
				likedMap := make(map[uint]bool, len(likedIDs))
				for _, id := range likedIDs {
					likedMap[id] = true
				}
				for _, p := range posts {
					p.Liked = likedMap[p.ID]
				}
			}
		}
		return posts, nil
	}

	if in.ForumID != nil {
		posts, err = s.postRepo.GetByForumID(ctx, *in.ForumID, in.Limit, in.Offset, in.CurrentUserID)
	} else {
		posts, err = s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// TogglePostLike flips the caller's like on the post and returns the new
// liked state together with the refreshed post aggregates.
func (s *PostService) TogglePostLike(ctx context.Context, userID, postID uint) (bool, *models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, nil, err
	}
	if err := requireMembership(ctx, s.forumRepo, userID, post.ForumID, "like_post"); err != nil {
		return false, nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, nil, err
	}

	if liked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return false, nil, err
	}

	state := "liked"
	if liked {
		state = "unliked"
	}
	middleware.LikeToggles.WithLabelValues("post", state).Inc()

	post, err = s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return false, nil, err
	}
	return !liked, post, nil
}
