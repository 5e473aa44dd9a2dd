package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	config "github.com/lyrahq/lyra-backend/configs"
	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

const (
	tiktokAuthURL    = "https://www.tiktok.com/auth/authorize/"
	tiktokTokenURL   = "https://open-api.tiktok.com/oauth/access_token/"
	tiktokRefreshURL = "https://open-api.tiktok.com/oauth/refresh_token/"
	tiktokAPIURL     = "https://open-api.tiktok.com"
)

// Tiktok implements the OAuth side of the capability set. Publishing always
// reports a designed rejection: the platform only accepts video content and
// this product generates text.
type Tiktok struct {
	clientKey    string
	clientSecret string
	redirectURI  string
	client       *http.Client

	authURL    string
	tokenURL   string
	refreshURL string
	apiURL     string
}

func NewTiktok(cfg config.Config) *Tiktok {
	return &Tiktok{
		clientKey:    cfg.TiktokClientKey,
		clientSecret: cfg.TiktokClientSecret,
		redirectURI:  cfg.OAuthRedirectURI,
		client:       newHTTPClient(),
		authURL:      tiktokAuthURL,
		tokenURL:     tiktokTokenURL,
		refreshURL:   tiktokRefreshURL,
		apiURL:       tiktokAPIURL,
	}
}

func (a *Tiktok) Name() string { return models.PlatformTiktok }

// AuthorizationURL uses client_key, TikTok's name for the client id.
func (a *Tiktok) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Add("client_key", a.clientKey)
	params.Add("response_type", "code")
	params.Add("scope", "user.info.basic,video.publish")
	params.Add("redirect_uri", a.redirectURI)
	params.Add("state", state)
	return fmt.Sprintf("%s?%s", a.authURL, params.Encode())
}

func (a *Tiktok) ExchangeCode(ctx context.Context, code string) (*transfer.TokenGrant, error) {
	data := url.Values{}
	data.Set("client_key", a.clientKey)
	data.Set("client_secret", a.clientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")

	status, body, err := postForm(ctx, a.client, a.tokenURL, data)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &TokenExchangeError{Platform: a.Name(), StatusCode: status, Body: string(body)}
	}
	return decodeTiktokGrant(body)
}

// RefreshToken posts to TikTok's dedicated refresh endpoint, which is
// separate from the code-exchange one.
func (a *Tiktok) RefreshToken(ctx context.Context, refreshToken, accessToken string) (*transfer.TokenGrant, error) {
	if refreshToken == "" {
		return nil, &RefreshError{Platform: a.Name(), Reason: "no refresh token available"}
	}

	data := url.Values{}
	data.Set("client_key", a.clientKey)
	data.Set("client_secret", a.clientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)

	status, body, err := postForm(ctx, a.client, a.refreshURL, data)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &RefreshError{Platform: a.Name(), StatusCode: status, Body: string(body)}
	}
	return decodeTiktokGrant(body)
}

// decodeTiktokGrant tolerates both the flat payload and the data-wrapped
// envelope TikTok's older endpoints answer with.
func decodeTiktokGrant(body []byte) (*transfer.TokenGrant, error) {
	var result struct {
		transfer.TokenGrant
		Data transfer.TokenGrant `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if result.AccessToken == "" && result.Data.AccessToken != "" {
		return &result.Data, nil
	}
	return &result.TokenGrant, nil
}

func (a *Tiktok) FetchProfile(ctx context.Context, accessToken string) (*transfer.Profile, error) {
	endpoint := fmt.Sprintf("%s/user/info/?access_token=%s", a.apiURL, url.QueryEscape(accessToken))

	status, body, err := getURL(ctx, a.client, endpoint)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("tiktok profile fetch failed (status %d): %s", status, body)
	}

	var result struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Data     struct {
			User struct {
				OpenID      string `json:"open_id"`
				DisplayName string `json:"display_name"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	profile := &transfer.Profile{ID: result.ID, Username: result.Username}
	if profile.ID == "" {
		profile.ID = result.Data.User.OpenID
		profile.Username = result.Data.User.DisplayName
	}
	return profile, nil
}

// PublishPost never calls the network: text-only content cannot be published
// to TikTok, so the rejection is deterministic.
func (a *Tiktok) PublishPost(ctx context.Context, account *models.SocialAccount, accessToken string, content *models.GeneratedContent) (*transfer.PostResult, error) {
	return &transfer.PostResult{
		Success:  false,
		Platform: a.Name(),
		Error:    "TikTok API requires video upload for content creation",
		Message:  "TikTok posting requires video content - text-only posts not supported",
	}, nil
}
