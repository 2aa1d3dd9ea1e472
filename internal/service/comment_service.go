package service

import (
	"context"
	"strings"

	"agriconnect/internal/middleware"
	"agriconnect/internal/models"
	"agriconnect/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	forumRepo   repository.ForumRepository
}

type CreateCommentInput struct {
	UserID          uint
	PostID          uint
	Content         string
	ParentCommentID *uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	forumRepo repository.ForumRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		forumRepo:   forumRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxCommentLen = 10000

	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if in.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentCommentID, 0)
		if err != nil {
			return nil, err
		}
		// A parent on another post is treated as absent, not as a
		// validation problem on this post.
		if parent.PostID != in.PostID {
			return nil, models.NewNotFoundError("Comment", *in.ParentCommentID)
		}
		if parent.IsReply() {
			return nil, models.NewValidationError("Replies can only target top-level comments")
		}
	}

	if err := requireMembership(ctx, s.forumRepo, in.UserID, post.ForumID, "create_comment"); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:         content,
		UserID:          in.UserID,
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID, in.UserID)
}

// ListComments returns the post's top-level comments ascending by creation
// time, each with its one level of replies attached.
func (s *CommentService) ListComments(ctx context.Context, postID uint, currentUserID uint) ([]models.CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	return models.BuildCommentTree(comments), nil
}

// ToggleCommentLike flips the caller's like on the comment and returns the
// new liked state together with the refreshed comment aggregates.
func (s *CommentService) ToggleCommentLike(ctx context.Context, userID, commentID uint) (bool, *models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return false, nil, err
	}
	post, err := s.postRepo.GetByID(ctx, comment.PostID, 0)
	if err != nil {
		return false, nil, err
	}
	if err := requireMembership(ctx, s.forumRepo, userID, post.ForumID, "like_comment"); err != nil {
		return false, nil, err
	}

	liked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return false, nil, err
	}

	if liked {
		err = s.commentRepo.Unlike(ctx, userID, commentID)
	} else {
		err = s.commentRepo.Like(ctx, userID, commentID)
	}
	if err != nil {
		return false, nil, err
	}

	state := "liked"
	if liked {
		state = "unliked"
	}
	middleware.LikeToggles.WithLabelValues("comment", state).Inc()

	comment, err = s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return false, nil, err
	}
	return !liked, comment, nil
}
