package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/platforms"
	"github.com/lyrahq/lyra-backend/internal/repository"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

type PlatformService interface {
	Status(ctx context.Context, userID int64) (*transfer.PlatformStatus, error)
	GetActiveAccount(ctx context.Context, userID int64, platform string) (*models.SocialAccount, error)
}

type platformService struct {
	registry *platforms.Registry
	sa       repository.SocialAccountRepository
}

func NewPlatformService(registry *platforms.Registry, sa repository.SocialAccountRepository) PlatformService {
	return &platformService{
		registry: registry,
		sa:       sa,
	}
}

func (s *platformService) Status(ctx context.Context, userID int64) (*transfer.PlatformStatus, error) {
	names := s.registry.Names()

	status := &transfer.PlatformStatus{
		Platforms:         make(map[string]bool, len(names)),
		ConnectedAccounts: make(map[string]transfer.ConnectedAccount),
		TotalPlatforms:    len(names),
	}
	for _, name := range names {
		status.Platforms[name] = false
	}

	accounts, err := s.sa.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting social accounts: %w", err)
	}

	for _, account := range accounts {
		if _, ok := status.Platforms[account.Platform]; !ok {
			continue
		}
		status.Platforms[account.Platform] = true
		status.ConnectedCount++

		connected := transfer.ConnectedAccount{
			Username:    account.PlatformUsername,
			ConnectedAt: account.CreatedAt.Format(time.RFC3339),
		}
		if account.TokenExpiresAt.Valid {
			expires := account.TokenExpiresAt.Time.Format(time.RFC3339)
			connected.ExpiresAt = &expires
		}
		status.ConnectedAccounts[account.Platform] = connected
	}

	return status, nil
}

// GetActiveAccount resolves the posting target. Disconnected accounts are
// invisible here, so a disconnect-then-post attempt reads as "no account".
func (s *platformService) GetActiveAccount(ctx context.Context, userID int64, platform string) (*models.SocialAccount, error) {
	account, exists, err := s.sa.GetActiveByUserAndPlatform(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("no connected %s account: %w", platform, ErrNotFound)
	}
	return account, nil
}
