package models

import "time"

const (
	ContentTypeSocialMedia     = "social_media"
	ContentTypeEmailNewsletter = "email_newsletter"
	ContentTypeBlogPost        = "blog_post"
	ContentTypeShortForm       = "short_form"
)

type GeneratedContent struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	ContentType string    `db:"content_type" json:"content_type"`
	Platform    string    `db:"platform" json:"platform"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"`
	Hashtags    string    `db:"hashtags" json:"hashtags"`
	PromptUsed  string    `db:"prompt_used" json:"-"`
	Model       string    `db:"model" json:"model"`
	TokensUsed  int64     `db:"tokens_used" json:"tokens_used"`
	IsApproved  bool      `db:"is_approved" json:"is_approved"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
