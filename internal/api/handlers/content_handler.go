package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lyrahq/lyra-backend/internal/service"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

type ContentHandler struct {
	s service.ContentService
}

func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{s: service}
}

func (h *ContentHandler) Generate(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.GenerateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	content, err := h.s.Generate(c.Context(), userID, req.Platform, req.ContentType, req.CustomPrompt)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business profile not set up",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate content",
		})
	}

	return c.JSON(content)
}

func (h *ContentHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)

	items, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch content",
		})
	}

	return c.JSON(items)
}

func (h *ContentHandler) Approve(c *fiber.Ctx) error {
	userID := GetUserID(c)

	contentID, err := c.ParamsInt("id")
	if err != nil || contentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content ID is required",
		})
	}

	if err := h.s.Approve(c.Context(), userID, int64(contentID)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Content not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to approve content",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Content approved",
	})
}
