package handlers

import (
	"alumni_portal_service/pkg/database"
	"alumni_portal_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MediaHandler 透過 MinIO 串流相簿檔案
type MediaHandler struct {
	Store *database.MinIOClient
}

// NewMediaHandler create MediaHandler
func NewMediaHandler(store *database.MinIOClient) *MediaHandler {
	return &MediaHandler{Store: store}
}

// Serve stream a stored object
// @Summary Stream media object
// @Tags Gallery
// @Produce octet-stream
// @Param object path string true "object key"
// @Success 200 {file} binary
// @Failure 404 {object} string "object not found"
// @Router /media/{object} [get]
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	objectName := c.Params("object")
	if objectName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object is required"})
	}

	obj, contentType, err := h.Store.GetObject(c.Context(), objectName)
	if err != nil {
		logger.Log.Warn("media object not found", zap.String("object", objectName), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "object not found"})
	}

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.SendStream(obj)
}
