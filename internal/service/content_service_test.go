package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

type fakeContentRepo struct {
	items  map[int64]*models.GeneratedContent
	nextID int64
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: make(map[int64]*models.GeneratedContent), nextID: 1}
}

func (r *fakeContentRepo) Create(ctx context.Context, content *models.GeneratedContent) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *content
	stored.ID = id
	r.items[id] = &stored
	return id, nil
}

func (r *fakeContentRepo) GetByIDForUser(ctx context.Context, id, userID int64) (*models.GeneratedContent, bool, error) {
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, false, nil
	}
	copied := *item
	return &copied, true, nil
}

func (r *fakeContentRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.GeneratedContent, error) {
	var out []*models.GeneratedContent
	for _, item := range r.items {
		if item.UserID == userID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeContentRepo) SetApproved(ctx context.Context, id int64) error {
	if item, ok := r.items[id]; ok {
		item.IsApproved = true
	}
	return nil
}

func (r *fakeContentRepo) MarkPublished(ctx context.Context, id int64) error {
	if item, ok := r.items[id]; ok {
		item.IsPublished = true
	}
	return nil
}

type fakeProfileRepo struct {
	profile *models.BusinessProfile
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.BusinessProfile, bool, error) {
	if r.profile == nil || r.profile.UserID != userID {
		return nil, false, nil
	}
	return r.profile, true, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *models.BusinessProfile) error {
	r.profile = profile
	return nil
}

type fakeAI struct {
	draft *transfer.GeneratedDraft
	err   error
	calls int
}

func (f *fakeAI) GenerateDraft(ctx context.Context, profile *models.BusinessProfile, contentType, platform, customPrompt string) (*transfer.GeneratedDraft, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.draft, nil
}

func TestGenerateRequiresPlatform(t *testing.T) {
	s := NewContentService(newFakeContentRepo(), &fakeProfileRepo{}, &fakeAI{})

	_, err := s.Generate(context.Background(), 42, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform is required")
}

func TestGenerateRequiresProfile(t *testing.T) {
	ai := &fakeAI{}
	s := NewContentService(newFakeContentRepo(), &fakeProfileRepo{}, ai)

	_, err := s.Generate(context.Background(), 42, "instagram", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, ai.calls)
}

func TestGenerateSavesDraft(t *testing.T) {
	repo := newFakeContentRepo()
	ai := &fakeAI{draft: &transfer.GeneratedDraft{
		Content:    "Best brew in town #coffee",
		Hashtags:   "#coffee",
		PromptUsed: "the prompt",
		Model:      "gpt-4",
		TokensUsed: 99,
	}}
	s := NewContentService(repo, &fakeProfileRepo{profile: profileFixture()}, ai)

	content, err := s.Generate(context.Background(), 42, "instagram", "", "")
	require.NoError(t, err)

	assert.NotZero(t, content.ID)
	assert.Equal(t, models.ContentTypeSocialMedia, content.ContentType, "content type defaults to social media")
	assert.Equal(t, "instagram", content.Platform)
	assert.Equal(t, "#coffee", content.Hashtags)
	assert.False(t, content.IsApproved, "generated content starts unapproved")

	stored, exists, err := repo.GetByIDForUser(context.Background(), content.ID, 42)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "Best brew in town #coffee", stored.Content)
}

func TestApprove(t *testing.T) {
	repo := newFakeContentRepo()
	s := NewContentService(repo, &fakeProfileRepo{}, &fakeAI{})

	id, err := repo.Create(context.Background(), &models.GeneratedContent{UserID: 42, Content: "draft"})
	require.NoError(t, err)

	require.NoError(t, s.Approve(context.Background(), 42, id))
	assert.True(t, repo.items[id].IsApproved)
}

func TestApproveOtherUsersContent(t *testing.T) {
	repo := newFakeContentRepo()
	s := NewContentService(repo, &fakeProfileRepo{}, &fakeAI{})

	id, err := repo.Create(context.Background(), &models.GeneratedContent{UserID: 42, Content: "draft"})
	require.NoError(t, err)

	err = s.Approve(context.Background(), 99, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, repo.items[id].IsApproved)
}

func TestGetNotFound(t *testing.T) {
	s := NewContentService(newFakeContentRepo(), &fakeProfileRepo{}, &fakeAI{})

	_, err := s.Get(context.Background(), 42, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
