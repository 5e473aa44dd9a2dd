package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/repository"
)

type ContentService interface {
	Generate(ctx context.Context, userID int64, platform, contentType, customPrompt string) (*models.GeneratedContent, error)
	List(ctx context.Context, userID int64) ([]*models.GeneratedContent, error)
	Get(ctx context.Context, userID, contentID int64) (*models.GeneratedContent, error)
	Approve(ctx context.Context, userID, contentID int64) error
	MarkPublished(ctx context.Context, contentID int64) error
}

type contentService struct {
	c  repository.ContentRepository
	bp repository.ProfileRepository
	ai AIService
}

func NewContentService(c repository.ContentRepository, bp repository.ProfileRepository, ai AIService) ContentService {
	return &contentService{
		c:  c,
		bp: bp,
		ai: ai,
	}
}

func (s *contentService) Generate(ctx context.Context, userID int64, platform, contentType, customPrompt string) (*models.GeneratedContent, error) {
	if platform == "" {
		return nil, errors.New("platform is required")
	}
	if contentType == "" {
		contentType = models.ContentTypeSocialMedia
	}

	profile, exists, err := s.bp.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = fmt.Errorf("business profile not set up: %w", ErrNotFound)
		slog.Info(err.Error())
		return nil, err
	}

	draft, err := s.ai.GenerateDraft(ctx, profile, contentType, platform, customPrompt)
	if err != nil {
		return nil, err
	}

	content := &models.GeneratedContent{
		UserID:      userID,
		ContentType: contentType,
		Platform:    platform,
		Content:     draft.Content,
		Hashtags:    draft.Hashtags,
		PromptUsed:  draft.PromptUsed,
		Model:       draft.Model,
		TokensUsed:  draft.TokensUsed,
	}

	id, err := s.c.Create(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("error saving generated content: %w", err)
	}
	content.ID = id

	return content, nil
}

func (s *contentService) List(ctx context.Context, userID int64) ([]*models.GeneratedContent, error) {
	items, err := s.c.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting content: %w", err)
	}
	return items, nil
}

func (s *contentService) Get(ctx context.Context, userID, contentID int64) (*models.GeneratedContent, error) {
	content, exists, err := s.c.GetByIDForUser(ctx, contentID, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("content not found: %w", ErrNotFound)
	}
	return content, nil
}

func (s *contentService) Approve(ctx context.Context, userID, contentID int64) error {
	_, exists, err := s.c.GetByIDForUser(ctx, contentID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("content not found: %w", ErrNotFound)
	}
	return s.c.SetApproved(ctx, contentID)
}

func (s *contentService) MarkPublished(ctx context.Context, contentID int64) error {
	return s.c.MarkPublished(ctx, contentID)
}
