package handlers

import (
	"errors"
	"strconv"

	galleryapp "alumni_portal_service/internal/gallery/app"
	"alumni_portal_service/internal/gallery/domain"
	"alumni_portal_service/pkg/logger"
	"alumni_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GalleryHandler 處理相簿相關的 HTTP 請求
type GalleryHandler struct {
	Usecase *galleryapp.GalleryUseCase
}

// NewGalleryHandler create GalleryHandler
func NewGalleryHandler(usecase *galleryapp.GalleryUseCase) *GalleryHandler {
	return &GalleryHandler{Usecase: usecase}
}

// Upload upload an image or video
// @Summary Upload gallery item
// @Tags Gallery
// @Accept mpfd
// @Produce json
// @Param file formData file true "image or video file"
// @Param title formData string false "title"
// @Success 201 {object} domain.GalleryItem
// @Failure 400 {object} string "invalid file"
// @Router /gallery [post]
func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Log.Error("open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "cannot read uploaded file"})
	}
	defer file.Close()

	item, err := h.Usecase.Upload(c.Context(), memberID, domain.UploadItem{
		Title:       c.FormValue("title"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		File:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileTooLarge), errors.Is(err, domain.ErrUnsupportedMedia):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List list gallery items newest first
// @Summary List gallery
// @Tags Gallery
// @Produce json
// @Success 200 {array} domain.ItemView
// @Router /gallery [get]
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	items, err := h.Usecase.List(memberID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(items)
}

// Download get a time-limited download link for the original file
// @Summary Get gallery download link
// @Tags Gallery
// @Produce json
// @Param id path int true "item id"
// @Success 200 {object} string "presigned url"
// @Failure 404 {object} string "item not found"
// @Router /gallery/{id}/download [get]
func (h *GalleryHandler) Download(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	url, err := h.Usecase.DownloadURL(c.Context(), uint(itemID))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"url": url})
}

// Delete delete own gallery item
// @Summary Delete gallery item
// @Tags Gallery
// @Produce json
// @Param id path int true "item id"
// @Success 200 {object} string "deleted"
// @Failure 403 {object} string "not the uploader"
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	if err := h.Usecase.Delete(c.Context(), memberID, uint(itemID)); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, domain.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "item deleted"})
}

// React set reaction on a gallery item
// @Summary React to gallery item
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path int true "item id"
// @Success 200 {object} string "reacted"
// @Failure 400 {object} string "invalid reaction"
// @Router /gallery/{id}/reactions [post]
func (h *GalleryHandler) React(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	type request struct {
		Type string `json:"type"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.React(memberID, uint(itemID), req.Type); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "reacted"})
}

// Unreact remove own reaction from a gallery item
// @Summary Remove gallery reaction
// @Tags Gallery
// @Produce json
// @Param id path int true "item id"
// @Success 200 {object} string "removed"
// @Router /gallery/{id}/reactions [delete]
func (h *GalleryHandler) Unreact(c *fiber.Ctx) error {
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	if err := h.Usecase.Unreact(memberID, uint(itemID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "reaction removed"})
}
