package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lyrahq/lyra-backend/internal/models"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.BusinessProfile, bool, error)
	Upsert(ctx context.Context, profile *models.BusinessProfile) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*models.BusinessProfile, bool, error) {
	query := `
		SELECT id, user_id, business_name, industry_niche, target_audience, brand_voice,
			content_goals, preferred_platforms, post_frequency, created_at, updated_at
		FROM business_profiles WHERE user_id = $1
	`

	var p models.BusinessProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.IndustryNiche, &p.TargetAudience, &p.BrandVoice,
		&p.ContentGoals, &p.PreferredPlatforms, &p.PostFrequency, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &p, true, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.BusinessProfile) error {
	query := `
		INSERT INTO business_profiles (
			user_id, business_name, industry_niche, target_audience, brand_voice,
			content_goals, preferred_platforms, post_frequency
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			industry_niche = EXCLUDED.industry_niche,
			target_audience = EXCLUDED.target_audience,
			brand_voice = EXCLUDED.brand_voice,
			content_goals = EXCLUDED.content_goals,
			preferred_platforms = EXCLUDED.preferred_platforms,
			post_frequency = EXCLUDED.post_frequency,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.BusinessName,
		profile.IndustryNiche,
		profile.TargetAudience,
		profile.BrandVoice,
		profile.ContentGoals,
		profile.PreferredPlatforms,
		profile.PostFrequency,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
