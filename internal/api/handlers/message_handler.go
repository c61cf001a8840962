package handlers

import (
	"errors"

	messagingapp "alumni_portal_service/internal/messaging/app"
	"alumni_portal_service/internal/messaging/domain"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler 處理私訊相關的 HTTP 請求
type MessageHandler struct {
	Usecase *messagingapp.MessageUseCase
}

// NewMessageHandler create MessageHandler
func NewMessageHandler(usecase *messagingapp.MessageUseCase) *MessageHandler {
	return &MessageHandler{Usecase: usecase}
}

// Send send a direct message
// @Summary Send direct message
// @Tags Messages
// @Accept json
// @Produce json
// @Success 201 {object} domain.Message
// @Failure 400 {object} string "invalid request"
// @Failure 404 {object} string "receiver not found"
// @Failure 500 {object} string "internal error"
// @Router /messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	var in domain.SendMessage
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	msg, err := h.Usecase.Send(c.Context(), memberID, in)
	if err != nil {
		if errors.Is(err, domain.ErrReceiverNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, domain.ErrContentRequired) || errors.Is(err, domain.ErrSelfMessage) || errors.Is(err, domain.ErrUnsupportedMediaType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// Conversations list conversation summaries
// @Summary List conversations
// @Description One entry per counterpart with last message and unread count
// @Tags Messages
// @Produce json
// @Success 200 {array} domain.Conversation
// @Router /messages/conversations [get]
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	conversations, err := h.Usecase.Conversations(c.Context(), memberID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(conversations)
}

// History list messages with one counterpart
// @Summary Get message history
// @Tags Messages
// @Produce json
// @Param userId path string true "counterpart member id"
// @Success 200 {array} domain.Message
// @Router /messages/{userId} [get]
func (h *MessageHandler) History(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	messages, err := h.Usecase.History(c.Context(), memberID, c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(messages)
}

// MarkRead mark messages from one counterpart as read
// @Summary Mark conversation read
// @Tags Messages
// @Produce json
// @Param userId path string true "counterpart member id"
// @Success 200 {object} string "updated count"
// @Router /messages/{userId}/read [post]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	updated, err := h.Usecase.MarkRead(c.Context(), memberID, c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"updated": updated})
}
