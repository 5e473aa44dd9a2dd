package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lyrahq/lyra-backend/internal/platforms"
	"github.com/lyrahq/lyra-backend/internal/service"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

// SocialHandler serves the platform integration surface: OAuth connect flow,
// auto-posting, connection status and disconnect.
type SocialHandler struct {
	oauth    service.OAuthService
	posting  service.PostingService
	platform service.PlatformService
	content  service.ContentService
}

func NewSocialHandler(oauth service.OAuthService, posting service.PostingService, platform service.PlatformService, content service.ContentService) *SocialHandler {
	return &SocialHandler{
		oauth:    oauth,
		posting:  posting,
		platform: platform,
		content:  content,
	}
}

func (h *SocialHandler) InitiateOAuth(c *fiber.Ctx) error {
	platform := c.Params("platform")

	auth, err := h.oauth.GetAuthorizationURL(c.Context(), platform)
	if err != nil {
		if errors.Is(err, platforms.ErrUnsupportedPlatform) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported platform",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Error initiating OAuth for %s", platform),
		})
	}

	return c.JSON(auth)
}

func (h *SocialHandler) OAuthCallback(c *fiber.Ctx) error {
	platform := c.Params("platform")
	userID := GetUserID(c)

	var req transfer.CallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	account, err := h.oauth.CompleteAuthorization(c.Context(), userID, platform, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Authorization code is required",
			})
		case errors.Is(err, platforms.ErrUnsupportedPlatform):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported platform",
			})
		default:
			slog.Info(err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("Error processing OAuth callback for %s", platform),
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("%s account connected successfully", titleCase(platform)),
		"platform": platform,
		"username": account.PlatformUsername,
		"status":   "connected",
	})
}

func (h *SocialHandler) AutoPost(c *fiber.Ctx) error {
	platform := c.Params("platform")
	userID := GetUserID(c)

	var req transfer.AutoPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if req.ContentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content ID is required",
		})
	}

	content, err := h.content.Get(c.Context(), userID, req.ContentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Content not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	account, err := h.platform.GetActiveAccount(c.Context(), userID, platform)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("No connected %s account found", platform),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	result, err := h.posting.PostContent(c.Context(), account, content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotApproved):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Content must be approved before posting",
			})
		case errors.Is(err, service.ErrTokenExpired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fmt.Sprintf("%s token expired and no refresh token available", platform),
			})
		case errors.Is(err, platforms.ErrUnsupportedPlatform):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unsupported platform",
			})
		default:
			slog.Info(err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("Error posting to %s", platform),
			})
		}
	}

	// The dispatcher is side-effect-free on content; the published flag is
	// flipped here, only after a confirmed success.
	if result.Success {
		if err := h.content.MarkPublished(c.Context(), content.ID); err != nil {
			slog.Info(err.Error())
		}
	}

	return c.JSON(result)
}

func (h *SocialHandler) PlatformStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)

	status, err := h.platform.Status(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch platform status",
		})
	}

	return c.JSON(status)
}

func (h *SocialHandler) Disconnect(c *fiber.Ctx) error {
	platform := c.Params("platform")
	userID := GetUserID(c)

	_, err := h.oauth.Disconnect(c.Context(), userID, platform)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("No connected %s account found", platform),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("%s account disconnected successfully", titleCase(platform)),
		"platform": platform,
		"status":   "disconnected",
	})
}
