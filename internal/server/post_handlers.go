package server

import (
	"time"

	"agriconnect/internal/models"
	"agriconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// The global feed is returned by default; pass ?forum_id= for a forum feed.
// @Summary List feed posts
// @Description List posts on the global feed, or on a forum feed when forum_id is set
// @Tags posts
// @Produce json
// @Param forum_id query int false "Forum ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	var forumID *uint
	if fid := c.QueryInt("forum_id", 0); fid > 0 {
		v := uint(fid)
		forumID = &v
	}

	posts, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
		ForumID:       forumID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(posts)
}

// GetForumPosts handles GET /api/forums/:slug/posts
// @Summary List forum posts
// @Tags forums
// @Produce json
// @Param slug path string true "Forum slug"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /forums/{slug}/posts [get]
func (s *Server) GetForumPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")
	page := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	forum, err := s.forumService.GetForum(ctx, slug)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	posts, err := s.postService.ListPosts(ctx, service.ListPostsInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: userID,
		ForumID:       &forum.ID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(ctx, id, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Description Create a post on the global feed or inside a followed forum
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{content=string,image_url=string,forum_id=int} true "Post body"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content  string `json:"content"`
		ImageURL string `json:"image_url,omitempty"`
		ForumID  *uint  `json:"forum_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		ForumID:  req.ForumID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	// Reload with author and counters for the response
	post, err = s.postRepo.GetByID(ctx, post.ID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishFeedEvent(EventPostCreated, map[string]interface{}{
		"post_id":    post.ID,
		"author_id":  post.UserID,
		"forum_id":   post.ForumID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// TogglePostLike handles POST /api/posts/:id/like
// The same endpoint likes and unlikes; the response carries the settled state.
// @Summary Toggle a post like
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} object{liked=bool,post=models.Post}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/like [post]
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, post, err := s.postService.TogglePostLike(ctx, userID, postID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	s.publishFeedEvent(EventPostReactionUpdated, map[string]interface{}{
		"post_id":     post.ID,
		"likes_count": post.LikesCount,
		"updated_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"liked": liked,
		"post":  post,
	})
}

// GetUserPosts handles GET /api/users/:id/posts
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Post
// @Router /users/{id}/posts [get]
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userIDParam, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	posts, err := s.userService.GetUserPosts(ctx, userIDParam, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(posts)
}
