package server

import (
	"time"

	"agriconnect/internal/models"
	"agriconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
// Returns the full comment tree for a post: top-level comments in posting
// order, each with its replies nested.
// @Summary List comments for a post
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.CommentView
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	comments, err := s.commentService.ListComments(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:id/comments
// @Summary Create a comment or reply
// @Description Comment on a post, or reply to a top-level comment via parent_comment_id
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body object{content=string,parent_comment_id=int} true "Comment body"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id,omitempty"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:          userID,
		PostID:          postID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	commentsCount := 0
	if post, postErr := s.postRepo.GetByID(ctx, postID, userID); postErr == nil {
		commentsCount = post.CommentsCount
	}
	s.publishFeedEvent(EventCommentCreated, map[string]interface{}{
		"post_id":        postID,
		"comment":        created,
		"comments_count": commentsCount,
		"updated_at":     time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ToggleCommentLike handles POST /api/comments/:id/like
// @Summary Toggle a comment like
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} object{liked=bool,comment=models.Comment}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id}/like [post]
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, comment, err := s.commentService.ToggleCommentLike(ctx, userID, commentID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishFeedEvent(EventCommentLikeUpdated, map[string]interface{}{
		"comment_id":  comment.ID,
		"post_id":     comment.PostID,
		"likes_count": comment.LikesCount,
		"updated_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"liked":   liked,
		"comment": comment,
	})
}
