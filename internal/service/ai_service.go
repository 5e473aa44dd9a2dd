package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	config "github.com/lyrahq/lyra-backend/configs"
	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

const openaiChatURL = "https://api.openai.com/v1/chat/completions"

// AIService generates social content drafts from a business profile through
// the OpenAI chat-completions API.
type AIService interface {
	GenerateDraft(ctx context.Context, profile *models.BusinessProfile, contentType, platform, customPrompt string) (*transfer.GeneratedDraft, error)
}

type aiService struct {
	apiKey  string
	client  *http.Client
	chatURL string
}

func NewAIService(cfg config.Config) AIService {
	return &aiService{
		apiKey:  cfg.OpenAIAPIKey,
		client:  &http.Client{Timeout: 60 * time.Second},
		chatURL: openaiChatURL,
	}
}

func (s *aiService) GenerateDraft(ctx context.Context, profile *models.BusinessProfile, contentType, platform, customPrompt string) (*transfer.GeneratedDraft, error) {
	prompt := customPrompt
	if prompt == "" {
		prompt = buildPrompt(profile, contentType, platform)
	}

	payload := map[string]interface{}{
		"model": "gpt-4",
		"messages": []map[string]string{
			{"role": "system", "content": "You are an expert social media marketer and content creator."},
			{"role": "user", "content": prompt},
		},
		"max_tokens":  1000,
		"temperature": 0.7,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.chatURL, bytes.NewBuffer(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		slog.Info("content generation request rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("failed to generate content (status %d): %s", resp.StatusCode, body)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int64 `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	content := result.Choices[0].Message.Content

	return &transfer.GeneratedDraft{
		Content:    content,
		Hashtags:   extractHashtags(contentType, content),
		PromptUsed: prompt,
		Model:      "gpt-4",
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

func buildPrompt(profile *models.BusinessProfile, contentType, platform string) string {
	var platformSpecific string
	switch platform {
	case models.PlatformInstagram:
		platformSpecific = "Include relevant hashtags and make it visually engaging. Keep captions under 2200 characters."
	case models.PlatformTiktok:
		platformSpecific = "Make it trendy, engaging, and suitable for short-form video content. Include trending hashtags."
	case models.PlatformLinkedin:
		platformSpecific = "Keep it professional and business-focused. Include industry-relevant insights."
	case models.PlatformFacebook:
		platformSpecific = "Make it conversational and community-focused. Encourage engagement."
	case models.PlatformEmail:
		platformSpecific = "Create a compelling subject line and engaging email content."
	}

	var instruction string
	switch contentType {
	case models.ContentTypeSocialMedia:
		instruction = "Create engaging social media content"
	case models.ContentTypeEmailNewsletter:
		instruction = "Write a newsletter section"
	case models.ContentTypeBlogPost:
		instruction = "Create a blog post outline and introduction"
	case models.ContentTypeShortForm:
		instruction = "Create short-form content suitable for TikTok or Reels"
	default:
		instruction = "Create engaging social media content"
	}

	return fmt.Sprintf(`Act as a social media marketer for a %s business called "%s" targeting %s with a %s brand voice.

%s to help achieve this goal: %s.

Platform: %s
%s

Business context:
- Industry: %s
- Target audience: %s
- Brand voice: %s
- Goals: %s

Create content that is authentic, engaging, and aligned with the brand voice.`,
		profile.IndustryNiche, profile.BusinessName, profile.TargetAudience, profile.BrandVoice,
		instruction, profile.ContentGoals,
		platform, platformSpecific,
		profile.IndustryNiche, profile.TargetAudience, profile.BrandVoice, profile.ContentGoals)
}

func extractHashtags(contentType, content string) string {
	if contentType != models.ContentTypeSocialMedia || !strings.Contains(content, "#") {
		return ""
	}

	var tags []string
	for _, word := range strings.Fields(content) {
		if strings.HasPrefix(word, "#") {
			tags = append(tags, word)
		}
	}
	return strings.Join(tags, " ")
}
