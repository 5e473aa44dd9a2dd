package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/platforms"
)

func TestStatusNoConnections(t *testing.T) {
	registry := platforms.NewRegistry(
		&fakeAdapter{name: "facebook"},
		&fakeAdapter{name: "instagram"},
	)
	s := NewPlatformService(registry, newFakeAccountRepo())

	status, err := s.Status(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 2, status.TotalPlatforms)
	assert.Equal(t, 0, status.ConnectedCount)
	assert.Equal(t, map[string]bool{"facebook": false, "instagram": false}, status.Platforms)
	assert.Empty(t, status.ConnectedAccounts)
}

func TestStatusWithConnections(t *testing.T) {
	registry := platforms.NewRegistry(
		&fakeAdapter{name: "facebook"},
		&fakeAdapter{name: "instagram"},
	)
	repo := newFakeAccountRepo()
	s := NewPlatformService(registry, repo)

	_, err := repo.Upsert(context.Background(), &models.SocialAccount{
		UserID:           42,
		Platform:         "instagram",
		PlatformUsername: "lyra_test",
		TokenExpiresAt:   sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true},
	})
	require.NoError(t, err)

	status, err := s.Status(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 1, status.ConnectedCount)
	assert.True(t, status.Platforms["instagram"])
	assert.False(t, status.Platforms["facebook"])

	connected, ok := status.ConnectedAccounts["instagram"]
	require.True(t, ok)
	assert.Equal(t, "lyra_test", connected.Username)
	require.NotNil(t, connected.ExpiresAt)

	_, err = time.Parse(time.RFC3339, connected.ConnectedAt)
	assert.NoError(t, err)
	_, err = time.Parse(time.RFC3339, *connected.ExpiresAt)
	assert.NoError(t, err)
}

func TestStatusSkipsDisconnected(t *testing.T) {
	registry := platforms.NewRegistry(&fakeAdapter{name: "tiktok"})
	repo := newFakeAccountRepo()
	s := NewPlatformService(registry, repo)

	id, err := repo.Upsert(context.Background(), &models.SocialAccount{
		UserID:   42,
		Platform: "tiktok",
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetActive(context.Background(), id, false))

	status, err := s.Status(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 0, status.ConnectedCount)
	assert.False(t, status.Platforms["tiktok"])
}

func TestGetActiveAccount(t *testing.T) {
	registry := platforms.NewRegistry(&fakeAdapter{name: "facebook"})
	repo := newFakeAccountRepo()
	s := NewPlatformService(registry, repo)

	_, err := repo.Upsert(context.Background(), &models.SocialAccount{
		UserID:   42,
		Platform: "facebook",
	})
	require.NoError(t, err)

	account, err := s.GetActiveAccount(context.Background(), 42, "facebook")
	require.NoError(t, err)
	assert.Equal(t, "facebook", account.Platform)

	_, err = s.GetActiveAccount(context.Background(), 42, "instagram")
	assert.ErrorIs(t, err, ErrNotFound)
}
