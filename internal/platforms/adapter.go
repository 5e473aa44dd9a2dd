package platforms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	config "github.com/lyrahq/lyra-backend/configs"
	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

// TokenExchangeError reports a non-2xx response from a platform's token
// endpoint during code exchange, surfacing the upstream body.
type TokenExchangeError struct {
	Platform   string
	StatusCode int
	Body       string
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s token exchange failed: %s", e.Platform, e.Body)
	}
	return fmt.Sprintf("%s token exchange failed (status %d): %s", e.Platform, e.StatusCode, e.Body)
}

// RefreshError reports a failed token refresh, either because the platform
// rejected the request or because the required credential is missing.
type RefreshError struct {
	Platform   string
	Reason     string
	StatusCode int
	Body       string
}

func (e *RefreshError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s token refresh failed: %s", e.Platform, e.Reason)
	}
	return fmt.Sprintf("%s token refresh failed (status %d): %s", e.Platform, e.StatusCode, e.Body)
}

// Adapter is the per-platform capability set: authorization URL shape, token
// exchange/refresh dialect, profile fetch and publish sequence. RefreshToken
// receives both stored credentials because Instagram and Facebook refresh off
// the current access token while LinkedIn and TikTok use a refresh token.
//
// PublishPost returns an error only for transport failures; a platform-side
// rejection is reported as a failed PostResult.
type Adapter interface {
	Name() string
	AuthorizationURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*transfer.TokenGrant, error)
	RefreshToken(ctx context.Context, refreshToken, accessToken string) (*transfer.TokenGrant, error)
	FetchProfile(ctx context.Context, accessToken string) (*transfer.Profile, error)
	PublishPost(ctx context.Context, account *models.SocialAccount, accessToken string, content *models.GeneratedContent) (*transfer.PostResult, error)
}

// Registry maps a platform name to its Adapter. Coordinator and dispatcher
// look adapters up here instead of branching per platform.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Default registers the four platforms wired to posting.
func Default(cfg config.Config) *Registry {
	return NewRegistry(
		NewInstagram(cfg),
		NewFacebook(cfg),
		NewLinkedin(cfg),
		NewTiktok(cfg),
	)
}

func (r *Registry) Get(platform string) (Adapter, error) {
	a, ok := r.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	return a, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// postForm submits an urlencoded form and returns the status code and body.
// The error is transport-level only.
func postForm(ctx context.Context, client *http.Client, endpoint string, data url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func getURL(ctx context.Context, client *http.Client, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// caption joins the content body with its optional hashtag block at publish
// time.
func caption(content *models.GeneratedContent) string {
	if content.Hashtags == "" {
		return content.Content
	}
	return content.Content + "\n\n" + content.Hashtags
}
