package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lyrahq/lyra-backend/internal/service"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

type ProfileHandler struct {
	s service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{s: service}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID := GetUserID(c)

	profile, err := h.s.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Business profile not set up",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to fetch business profile",
		})
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var update transfer.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.SaveProfile(c.Context(), userID, update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update business profile",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
