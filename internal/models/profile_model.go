package models

import "time"

// BusinessProfile holds the onboarding answers used to drive content
// generation. One per user.
type BusinessProfile struct {
	ID                 int64     `db:"id" json:"id"`
	UserID             int64     `db:"user_id" json:"user_id"`
	BusinessName       string    `db:"business_name" json:"business_name"`
	IndustryNiche      string    `db:"industry_niche" json:"industry_niche"`
	TargetAudience     string    `db:"target_audience" json:"target_audience"`
	BrandVoice         string    `db:"brand_voice" json:"brand_voice"`
	ContentGoals       string    `db:"content_goals" json:"content_goals"`
	PreferredPlatforms string    `db:"preferred_platforms" json:"preferred_platforms"`
	PostFrequency      string    `db:"post_frequency" json:"post_frequency"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
