package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/repository"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.BusinessProfile, error)
	SaveProfile(ctx context.Context, userID int64, update transfer.ProfileUpdate) error
}

type profileService struct {
	bp repository.ProfileRepository
}

func NewProfileService(bp repository.ProfileRepository) ProfileService {
	return &profileService{bp: bp}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*models.BusinessProfile, error) {
	profile, exists, err := s.bp.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("business profile not set up: %w", ErrNotFound)
	}
	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, userID int64, update transfer.ProfileUpdate) error {
	if update.BusinessName == "" || update.IndustryNiche == "" {
		return errors.New("business name and industry are required")
	}

	profile := &models.BusinessProfile{
		UserID:             userID,
		BusinessName:       update.BusinessName,
		IndustryNiche:      update.IndustryNiche,
		TargetAudience:     update.TargetAudience,
		BrandVoice:         update.BrandVoice,
		ContentGoals:       update.ContentGoals,
		PreferredPlatforms: update.PreferredPlatforms,
		PostFrequency:      update.PostFrequency,
	}

	if err := s.bp.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("error saving business profile: %w", err)
	}
	return nil
}
