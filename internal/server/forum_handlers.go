package server

import (
	"time"

	"agriconnect/internal/models"
	"agriconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetForums handles GET /api/forums
// @Summary List forums
// @Tags forums
// @Produce json
// @Success 200 {array} models.Forum
// @Router /forums [get]
func (s *Server) GetForums(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)

	forums, err := s.forumService.ListForums(ctx, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(forums)
}

// GetForumBySlug handles GET /api/forums/:slug
// @Summary Get forum by slug
// @Tags forums
// @Produce json
// @Param slug path string true "Forum slug"
// @Success 200 {object} object{forum=models.Forum,member_count=int,following=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /forums/{slug} [get]
func (s *Server) GetForumBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	forum, err := s.forumService.GetForum(ctx, slug)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	memberCount, err := s.forumService.MemberCount(ctx, forum.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	following := false
	if userID, ok := s.optionalUserID(c); ok {
		following, err = s.forumService.CanInteract(ctx, userID, forum.ID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	return c.JSON(fiber.Map{
		"forum":        forum,
		"member_count": memberCount,
		"following":    following,
	})
}

// CreateForum handles POST /api/forums
// The creator becomes the forum owner and its first member.
// @Summary Create a forum
// @Tags forums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,slug=string,description=string} true "Forum body"
// @Success 201 {object} models.Forum
// @Failure 400 {object} models.ErrorResponse
// @Router /forums [post]
func (s *Server) CreateForum(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	forum, err := s.forumService.CreateForum(ctx, service.CreateForumInput{
		UserID:      userID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(forum)
}

// ToggleForumFollow handles POST /api/forums/:id/follow
// The same endpoint follows and unfollows; the response carries the settled state.
// @Summary Toggle following a forum
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Success 200 {object} object{following=bool,member_count=int}
// @Failure 404 {object} models.ErrorResponse
// @Router /forums/{id}/follow [post]
func (s *Server) ToggleForumFollow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	forumID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.forumService.ToggleFollow(ctx, userID, forumID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	memberCount, err := s.forumService.MemberCount(ctx, forumID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	s.publishFeedEvent(EventForumMembershipChange, map[string]interface{}{
		"forum_id":     forumID,
		"member_count": memberCount,
		"updated_at":   time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{
		"following":    following,
		"member_count": memberCount,
	})
}

// GetMyForumMemberships handles GET /api/forums/memberships/me
// @Summary List forums the current user follows
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ForumMembership
// @Router /forums/memberships/me [get]
func (s *Server) GetMyForumMemberships(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	memberships, err := s.forumService.ListMyMemberships(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(memberships)
}
