package platforms

import (
	"github.com/lyrahq/lyra-backend/internal/models"
)

func accountFixture(platform string) *models.SocialAccount {
	return &models.SocialAccount{
		ID:               1,
		UserID:           42,
		Platform:         platform,
		PlatformUserID:   "9001",
		PlatformUsername: "lyra_test",
		IsActive:         true,
	}
}

func contentFixture() *models.GeneratedContent {
	return &models.GeneratedContent{
		ID:       7,
		UserID:   42,
		Content:  "Launch day!",
		Hashtags: "#launch #startup",
	}
}
