package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/platforms"
	"github.com/lyrahq/lyra-backend/internal/transfer"
	"github.com/lyrahq/lyra-backend/pkg/crypto"
)

func testCipher() *crypto.Cipher {
	c, err := crypto.New([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		panic(err)
	}
	return c
}

// fakeAdapter counts calls and answers with canned values so tests can assert
// exactly which platform operations ran.
type fakeAdapter struct {
	name string

	exchangeGrant *transfer.TokenGrant
	exchangeErr   error
	refreshGrant  *transfer.TokenGrant
	refreshErr    error
	profile       *transfer.Profile
	profileErr    error
	publishResult *transfer.PostResult
	publishErr    error

	exchangeCalls int
	refreshCalls  int
	profileCalls  int
	publishCalls  int

	lastRefreshToken string
	lastAccessToken  string
	lastPublishToken string
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) AuthorizationURL(state string) string {
	return fmt.Sprintf("https://example.com/oauth?state=%s", state)
}

func (f *fakeAdapter) ExchangeCode(ctx context.Context, code string) (*transfer.TokenGrant, error) {
	f.exchangeCalls++
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.exchangeGrant, nil
}

func (f *fakeAdapter) RefreshToken(ctx context.Context, refreshToken, accessToken string) (*transfer.TokenGrant, error) {
	f.refreshCalls++
	f.lastRefreshToken = refreshToken
	f.lastAccessToken = accessToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshGrant, nil
}

func (f *fakeAdapter) FetchProfile(ctx context.Context, accessToken string) (*transfer.Profile, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeAdapter) PublishPost(ctx context.Context, account *models.SocialAccount, accessToken string, content *models.GeneratedContent) (*transfer.PostResult, error) {
	f.publishCalls++
	f.lastPublishToken = accessToken
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	return f.publishResult, nil
}

// fakeAccountRepo keeps accounts in memory keyed by (user, platform).
type fakeAccountRepo struct {
	accounts map[string]*models.SocialAccount
	nextID   int64

	upsertCalls       int
	updateTokensCalls int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*models.SocialAccount), nextID: 1}
}

func accountKey(userID int64, platform string) string {
	return fmt.Sprintf("%d:%s", userID, platform)
}

func (r *fakeAccountRepo) Upsert(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	r.upsertCalls++
	key := accountKey(sa.UserID, sa.Platform)
	if existing, ok := r.accounts[key]; ok {
		sa.ID = existing.ID
		if sa.RefreshToken == "" {
			sa.RefreshToken = existing.RefreshToken
		}
	} else {
		sa.ID = r.nextID
		r.nextID++
	}
	sa.IsActive = true
	stored := *sa
	r.accounts[key] = &stored
	return sa.ID, nil
}

func (r *fakeAccountRepo) GetActiveByUserAndPlatform(ctx context.Context, userID int64, platform string) (*models.SocialAccount, bool, error) {
	sa, ok := r.accounts[accountKey(userID, platform)]
	if !ok || !sa.IsActive {
		return nil, false, nil
	}
	copied := *sa
	return &copied, true, nil
}

func (r *fakeAccountRepo) GetByUserAndPlatform(ctx context.Context, userID int64, platform string) (*models.SocialAccount, bool, error) {
	sa, ok := r.accounts[accountKey(userID, platform)]
	if !ok {
		return nil, false, nil
	}
	copied := *sa
	return &copied, true, nil
}

func (r *fakeAccountRepo) ListActiveByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	var out []*models.SocialAccount
	for _, sa := range r.accounts {
		if sa.UserID == userID && sa.IsActive {
			copied := *sa
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt sql.NullTime) error {
	r.updateTokensCalls++
	for _, sa := range r.accounts {
		if sa.ID == id {
			sa.AccessToken = accessToken
			if refreshToken != "" {
				sa.RefreshToken = refreshToken
			}
			if expiresAt.Valid {
				sa.TokenExpiresAt = expiresAt
			}
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *fakeAccountRepo) SetActive(ctx context.Context, id int64, active bool) error {
	for _, sa := range r.accounts {
		if sa.ID == id {
			sa.IsActive = active
			return nil
		}
	}
	return sql.ErrNoRows
}

var errBoom = errors.New("connection reset by peer")

var _ platforms.Adapter = (*fakeAdapter)(nil)
