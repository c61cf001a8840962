package handlers

import (
	"errors"
	"strconv"

	communityapp "alumni_portal_service/internal/community/app"
	"alumni_portal_service/internal/community/domain"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// PostHandler 處理動態牆相關的 HTTP 請求
type PostHandler struct {
	Usecase *communityapp.PostUseCase
}

// NewPostHandler create PostHandler
func NewPostHandler(usecase *communityapp.PostUseCase) *PostHandler {
	return &PostHandler{Usecase: usecase}
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Create create a post
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Success 201 {object} domain.Post
// @Failure 400 {object} string "invalid request"
// @Router /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	var in domain.CreatePost
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	post, err := h.Usecase.Create(memberID, in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// Feed list posts newest first
// @Summary Get feed
// @Tags Posts
// @Produce json
// @Success 200 {array} domain.PostView
// @Router /posts [get]
func (h *PostHandler) Feed(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	posts, err := h.Usecase.Feed(memberID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(posts)
}

// Get get a single post with reactions and comments
// @Summary Get post
// @Tags Posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} domain.PostView
// @Failure 404 {object} string "post not found"
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	postID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	post, err := h.Usecase.Get(memberID, postID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(post)
}

// Delete delete own post
// @Summary Delete post
// @Tags Posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} string "deleted"
// @Failure 403 {object} string "not the author"
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	postID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	if err := h.Usecase.Delete(memberID, postID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "post deleted"})
}

// React set reaction on a post
// @Summary React to post
// @Description Replaces any previous reaction by the same member
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} string "reacted"
// @Failure 400 {object} string "invalid reaction"
// @Router /posts/{id}/reactions [post]
func (h *PostHandler) React(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	postID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	type request struct {
		Type string `json:"type"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.React(memberID, postID, req.Type); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "reacted"})
}

// Unreact remove own reaction from a post
// @Summary Remove reaction
// @Tags Posts
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} string "removed"
// @Router /posts/{id}/reactions [delete]
func (h *PostHandler) Unreact(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	postID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	if err := h.Usecase.Unreact(memberID, postID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "reaction removed"})
}

// Comment add a comment to a post
// @Summary Comment on post
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path int true "post id"
// @Success 201 {object} domain.CommentView
// @Failure 400 {object} string "invalid comment"
// @Router /posts/{id}/comments [post]
func (h *PostHandler) Comment(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	postID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid post id"})
	}

	type request struct {
		Content string `json:"content"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	comment, err := h.Usecase.Comment(memberID, postID, req.Content)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
