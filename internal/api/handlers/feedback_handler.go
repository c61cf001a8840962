package handlers

import (
	feedbackapp "alumni_portal_service/internal/feedback/app"
	"alumni_portal_service/internal/feedback/domain"
	"alumni_portal_service/pkg/middlewares"
	"alumni_portal_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler 處理意見回饋相關的 HTTP 請求
type FeedbackHandler struct {
	Usecase *feedbackapp.FeedbackUseCase
}

// NewFeedbackHandler create FeedbackHandler
func NewFeedbackHandler(usecase *feedbackapp.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{Usecase: usecase}
}

// Submit submit feedback
// @Summary Submit feedback
// @Description Private feedback is forwarded to the admin mailbox
// @Tags Feedback
// @Accept json
// @Produce json
// @Success 201 {object} string "submitted"
// @Failure 400 {object} string "invalid feedback"
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	var feedback domain.Feedback
	if err := c.BodyParser(&feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if err := h.Usecase.Submit(memberID, &feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "feedback submitted"})
}

// ListPublic list public feedback
// @Summary List public feedback
// @Tags Feedback
// @Produce json
// @Success 200 {array} domain.FeedbackView
// @Router /feedback [get]
func (h *FeedbackHandler) ListPublic(c *fiber.Ctx) error {
	views, err := h.Usecase.ListPublic()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(views)
}

// ListAll list all feedback, admin only
// @Summary List all feedback
// @Tags Feedback
// @Produce json
// @Success 200 {array} domain.FeedbackView
// @Failure 403 {object} string "admin only"
// @Router /feedback/all [get]
func (h *FeedbackHandler) ListAll(c *fiber.Ctx) error {
	role, _ := c.Locals(middlewares.TokenRole).(string)
	if role != string(token.RoleAdmin) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin only"})
	}

	views, err := h.Usecase.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(views)
}
