package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/singleflight"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/platforms"
	"github.com/lyrahq/lyra-backend/internal/repository"
	"github.com/lyrahq/lyra-backend/internal/transfer"
	"github.com/lyrahq/lyra-backend/pkg/crypto"
)

// OAuthService owns the connect/refresh lifecycle of social accounts:
// authorization URL generation, code-for-token exchange, lazy refresh and
// soft disconnect. Platform specifics live in the adapter registry; tokens
// are stored encrypted and only decrypted for the span of an adapter call.
type OAuthService interface {
	GetAuthorizationURL(ctx context.Context, platform string) (*transfer.AuthorizationRequest, error)
	CompleteAuthorization(ctx context.Context, userID int64, platform, code string) (*models.SocialAccount, error)
	EnsureFreshToken(ctx context.Context, account *models.SocialAccount) error
	Disconnect(ctx context.Context, userID int64, platform string) (*models.SocialAccount, error)
}

type oauthService struct {
	registry *platforms.Registry
	sa       repository.SocialAccountRepository
	cipher   *crypto.Cipher
	refresh  singleflight.Group
}

func NewOAuthService(registry *platforms.Registry, sa repository.SocialAccountRepository, cipher *crypto.Cipher) OAuthService {
	return &oauthService{
		registry: registry,
		sa:       sa,
		cipher:   cipher,
	}
}

func (s *oauthService) GetAuthorizationURL(ctx context.Context, platform string) (*transfer.AuthorizationRequest, error) {
	adapter, err := s.registry.Get(platform)
	if err != nil {
		return nil, err
	}

	// TODO: persist the state value and verify it on callback once the
	// frontend echoes it back.
	state, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	return &transfer.AuthorizationRequest{
		AuthorizationURL: adapter.AuthorizationURL(state),
		Platform:         platform,
	}, nil
}

func (s *oauthService) CompleteAuthorization(ctx context.Context, userID int64, platform, code string) (*models.SocialAccount, error) {
	if code == "" {
		slog.Info("oauth callback without authorization code", "platform", platform)
		return nil, ErrMissingCode
	}

	adapter, err := s.registry.Get(platform)
	if err != nil {
		return nil, err
	}

	grant, err := adapter.ExchangeCode(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if grant.AccessToken == "" {
		err = &platforms.TokenExchangeError{Platform: platform, Body: "no access token in response"}
		slog.Info(err.Error())
		return nil, err
	}

	profile, err := adapter.FetchProfile(ctx, grant.AccessToken)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	encryptedAccessToken, err := s.cipher.Encrypt(grant.AccessToken)
	if err != nil {
		return nil, err
	}

	var encryptedRefreshToken string
	if grant.RefreshToken != "" {
		encryptedRefreshToken, err = s.cipher.Encrypt(grant.RefreshToken)
		if err != nil {
			return nil, err
		}
	}

	account := &models.SocialAccount{
		UserID:           userID,
		Platform:         platform,
		PlatformUserID:   profile.ID,
		PlatformUsername: profile.Username,
		AccessToken:      encryptedAccessToken,
		RefreshToken:     encryptedRefreshToken,
		TokenExpiresAt:   expiryFromSeconds(grant.ExpiresIn),
		IsActive:         true,
	}

	// Upsert: reconnecting overwrites the existing (user, platform) row so
	// at most one active account exists per pair.
	id, err := s.sa.Upsert(ctx, account)
	if err != nil {
		return nil, err
	}
	account.ID = id

	return account, nil
}

// EnsureFreshToken refreshes the account's access token when the stored
// expiry has passed. A NULL expiry means the token is treated as
// non-expiring until a call fails. Concurrent refreshes for the same account
// are collapsed into one upstream request.
func (s *oauthService) EnsureFreshToken(ctx context.Context, account *models.SocialAccount) error {
	if !account.TokenExpiresAt.Valid || account.TokenExpiresAt.Time.After(time.Now()) {
		return nil
	}

	adapter, err := s.registry.Get(account.Platform)
	if err != nil {
		return err
	}

	refreshed, err, _ := s.refresh.Do(fmt.Sprintf("account:%d", account.ID), func() (interface{}, error) {
		return s.refreshAccount(ctx, adapter, account)
	})
	if err != nil {
		return err
	}

	fresh := refreshed.(*models.SocialAccount)
	account.AccessToken = fresh.AccessToken
	account.RefreshToken = fresh.RefreshToken
	account.TokenExpiresAt = fresh.TokenExpiresAt
	return nil
}

func (s *oauthService) refreshAccount(ctx context.Context, adapter platforms.Adapter, account *models.SocialAccount) (*models.SocialAccount, error) {
	accessToken, err := s.cipher.Decrypt(account.AccessToken)
	if err != nil {
		return nil, err
	}

	var refreshToken string
	if account.RefreshToken != "" {
		refreshToken, err = s.cipher.Decrypt(account.RefreshToken)
		if err != nil {
			return nil, err
		}
	}

	grant, err := adapter.RefreshToken(ctx, refreshToken, accessToken)
	if err != nil {
		var refreshErr *platforms.RefreshError
		if errors.As(err, &refreshErr) {
			slog.Info(refreshErr.Error())
			return nil, fmt.Errorf("%s: %w", account.Platform, ErrTokenExpired)
		}
		// Transport failure: surfaced as-is, nothing to recover here.
		return nil, err
	}

	encryptedAccessToken, err := s.cipher.Encrypt(grant.AccessToken)
	if err != nil {
		return nil, err
	}

	var encryptedRefreshToken string
	if grant.RefreshToken != "" {
		encryptedRefreshToken, err = s.cipher.Encrypt(grant.RefreshToken)
		if err != nil {
			return nil, err
		}
	}

	expiresAt := expiryFromSeconds(grant.ExpiresIn)
	if err := s.sa.UpdateTokens(ctx, account.ID, encryptedAccessToken, encryptedRefreshToken, expiresAt); err != nil {
		return nil, err
	}

	fresh := &models.SocialAccount{
		AccessToken:    encryptedAccessToken,
		RefreshToken:   account.RefreshToken,
		TokenExpiresAt: account.TokenExpiresAt,
	}
	if encryptedRefreshToken != "" {
		fresh.RefreshToken = encryptedRefreshToken
	}
	if expiresAt.Valid {
		fresh.TokenExpiresAt = expiresAt
	}
	return fresh, nil
}

// Disconnect soft-deletes the connection: the row is flipped inactive and its
// token material retained, so reconnecting later does not require re-auth.
func (s *oauthService) Disconnect(ctx context.Context, userID int64, platform string) (*models.SocialAccount, error) {
	account, exists, err := s.sa.GetByUserAndPlatform(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("no connected %s account: %w", platform, ErrNotFound)
	}

	if err := s.sa.SetActive(ctx, account.ID, false); err != nil {
		return nil, err
	}
	account.IsActive = false

	return account, nil
}

func expiryFromSeconds(expiresIn int64) sql.NullTime {
	if expiresIn <= 0 {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: time.Now().Add(time.Duration(expiresIn) * time.Second), Valid: true}
}
