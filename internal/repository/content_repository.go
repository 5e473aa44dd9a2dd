package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lyrahq/lyra-backend/internal/models"
)

type ContentRepository interface {
	Create(ctx context.Context, content *models.GeneratedContent) (int64, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.GeneratedContent, bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.GeneratedContent, error)
	SetApproved(ctx context.Context, id int64) error
	MarkPublished(ctx context.Context, id int64) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, user_id, content_type, platform, title, content, hashtags,
			prompt_used, model, tokens_used, is_approved, is_published, created_at, updated_at`

func (r *contentRepository) Create(ctx context.Context, content *models.GeneratedContent) (int64, error) {
	query := `
		INSERT INTO generated_content (
			user_id, content_type, platform, title, content, hashtags, prompt_used, model, tokens_used
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		content.UserID,
		content.ContentType,
		content.Platform,
		content.Title,
		content.Content,
		content.Hashtags,
		content.PromptUsed,
		content.Model,
		content.TokensUsed,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *contentRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.GeneratedContent, bool, error) {
	query := `SELECT ` + contentColumns + ` FROM generated_content WHERE id = $1 AND user_id = $2`

	var c models.GeneratedContent
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&c.ID, &c.UserID, &c.ContentType, &c.Platform, &c.Title, &c.Content, &c.Hashtags,
		&c.PromptUsed, &c.Model, &c.TokensUsed, &c.IsApproved, &c.IsPublished,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &c, true, nil
}

func (r *contentRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.GeneratedContent, error) {
	query := `SELECT ` + contentColumns + ` FROM generated_content WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.GeneratedContent
	for rows.Next() {
		var c models.GeneratedContent
		err := rows.Scan(
			&c.ID, &c.UserID, &c.ContentType, &c.Platform, &c.Title, &c.Content, &c.Hashtags,
			&c.PromptUsed, &c.Model, &c.TokensUsed, &c.IsApproved, &c.IsPublished,
			&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &c)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return items, nil
}

func (r *contentRepository) SetApproved(ctx context.Context, id int64) error {
	query := `UPDATE generated_content SET is_approved = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) MarkPublished(ctx context.Context, id int64) error {
	query := `UPDATE generated_content SET is_published = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
