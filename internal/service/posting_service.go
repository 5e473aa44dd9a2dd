package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/platforms"
	"github.com/lyrahq/lyra-backend/internal/transfer"
	"github.com/lyrahq/lyra-backend/pkg/crypto"
)

// PostingService turns an approved content item into a platform-side post:
// precondition checks, lazy token refresh, then dispatch to the platform
// adapter. The result is always a normalized PostResult; marking the content
// published is the caller's job.
//
// Posting is not idempotent: two calls for the same content produce two
// platform-side posts. Callers gate on the content's published flag.
type PostingService interface {
	PostContent(ctx context.Context, account *models.SocialAccount, content *models.GeneratedContent) (*transfer.PostResult, error)
}

type postingService struct {
	oauth    OAuthService
	registry *platforms.Registry
	cipher   *crypto.Cipher

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewPostingService(oauth OAuthService, registry *platforms.Registry, cipher *crypto.Cipher) PostingService {
	return &postingService{
		oauth:    oauth,
		registry: registry,
		cipher:   cipher,
		locks:    make(map[int64]*sync.Mutex),
	}
}

func (s *postingService) PostContent(ctx context.Context, account *models.SocialAccount, content *models.GeneratedContent) (*transfer.PostResult, error) {
	// Publish attempts for one account are serialized so a refreshed token is
	// never raced against a stale one.
	lock := s.accountLock(account.ID)
	lock.Lock()
	defer lock.Unlock()

	if !content.IsApproved {
		return nil, ErrNotApproved
	}

	adapter, err := s.registry.Get(account.Platform)
	if err != nil {
		return nil, err
	}

	if err := s.oauth.EnsureFreshToken(ctx, account); err != nil {
		return nil, err
	}

	accessToken, err := s.cipher.Decrypt(account.AccessToken)
	if err != nil {
		return nil, err
	}

	result, err := adapter.PublishPost(ctx, account, accessToken, content)
	if err != nil {
		// Transport failure: a platform outage must not crash the request.
		slog.Info(err.Error(), "platform", account.Platform)
		return &transfer.PostResult{
			Success:  false,
			Platform: account.Platform,
			Error:    err.Error(),
			Message:  "Failed to reach " + account.Platform,
		}, nil
	}

	return result, nil
}

// accountLock returns the mutex for an account, creating it on first use.
// Entries are never evicted: one mutex per account ever posted through this
// process is a bounded, tiny footprint, and eviction would reintroduce the
// race the lock exists to prevent.
func (s *postingService) accountLock(accountID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[accountID] = lock
	}
	return lock
}
