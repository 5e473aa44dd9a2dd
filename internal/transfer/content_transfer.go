package transfer

type GenerateContentRequest struct {
	Platform     string `json:"platform"`
	ContentType  string `json:"content_type"`
	CustomPrompt string `json:"custom_prompt"`
}

type AutoPostRequest struct {
	ContentID int64 `json:"content_id"`
}

type CallbackRequest struct {
	Code string `json:"code"`
}

type ProfileUpdate struct {
	BusinessName       string `json:"business_name"`
	IndustryNiche      string `json:"industry_niche"`
	TargetAudience     string `json:"target_audience"`
	BrandVoice         string `json:"brand_voice"`
	ContentGoals       string `json:"content_goals"`
	PreferredPlatforms string `json:"preferred_platforms"`
	PostFrequency      string `json:"post_frequency"`
}

// GeneratedDraft is what the AI layer hands back before persistence.
type GeneratedDraft struct {
	Content    string
	Hashtags   string
	PromptUsed string
	Model      string
	TokensUsed int64
}
