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
	facebookAuthURL  = "https://www.facebook.com/v18.0/dialog/oauth"
	facebookTokenURL = "https://graph.facebook.com/v18.0/oauth/access_token"
	facebookGraphURL = "https://graph.facebook.com"
)

type Facebook struct {
	clientID     string
	clientSecret string
	redirectURI  string
	client       *http.Client

	authURL  string
	tokenURL string
	graphURL string
}

func NewFacebook(cfg config.Config) *Facebook {
	return &Facebook{
		clientID:     cfg.FacebookClientID,
		clientSecret: cfg.FacebookClientSecret,
		redirectURI:  cfg.OAuthRedirectURI,
		client:       newHTTPClient(),
		authURL:      facebookAuthURL,
		tokenURL:     facebookTokenURL,
		graphURL:     facebookGraphURL,
	}
}

func (a *Facebook) Name() string { return models.PlatformFacebook }

func (a *Facebook) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Add("client_id", a.clientID)
	params.Add("redirect_uri", a.redirectURI)
	params.Add("scope", "pages_manage_posts,pages_read_engagement")
	params.Add("response_type", "code")
	params.Add("state", state)
	return fmt.Sprintf("%s?%s", a.authURL, params.Encode())
}

func (a *Facebook) ExchangeCode(ctx context.Context, code string) (*transfer.TokenGrant, error) {
	data := url.Values{}
	data.Set("client_id", a.clientID)
	data.Set("client_secret", a.clientSecret)
	data.Set("redirect_uri", a.redirectURI)
	data.Set("code", code)

	status, body, err := postForm(ctx, a.client, a.tokenURL, data)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &TokenExchangeError{Platform: a.Name(), StatusCode: status, Body: string(body)}
	}

	var grant transfer.TokenGrant
	if err := json.Unmarshal(body, &grant); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &grant, nil
}

// RefreshToken uses Facebook's fb_exchange_token grant, trading the current
// access token for a fresh long-lived one.
func (a *Facebook) RefreshToken(ctx context.Context, refreshToken, accessToken string) (*transfer.TokenGrant, error) {
	if accessToken == "" {
		return nil, &RefreshError{Platform: a.Name(), Reason: "no access token available"}
	}

	data := url.Values{}
	data.Set("grant_type", "fb_exchange_token")
	data.Set("client_id", a.clientID)
	data.Set("client_secret", a.clientSecret)
	data.Set("fb_exchange_token", accessToken)

	status, body, err := postForm(ctx, a.client, a.tokenURL, data)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &RefreshError{Platform: a.Name(), StatusCode: status, Body: string(body)}
	}

	var grant transfer.TokenGrant
	if err := json.Unmarshal(body, &grant); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	return &grant, nil
}

func (a *Facebook) FetchProfile(ctx context.Context, accessToken string) (*transfer.Profile, error) {
	endpoint := fmt.Sprintf("%s/me?access_token=%s", a.graphURL, url.QueryEscape(accessToken))

	status, body, err := getURL(ctx, a.client, endpoint)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("facebook profile fetch failed (status %d): %s", status, body)
	}

	var result struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	username := result.Username
	if username == "" {
		username = result.Name
	}
	return &transfer.Profile{ID: result.ID, Username: username}, nil
}

func (a *Facebook) PublishPost(ctx context.Context, account *models.SocialAccount, accessToken string, content *models.GeneratedContent) (*transfer.PostResult, error) {
	feedURL := fmt.Sprintf("%s/%s/feed", a.graphURL, account.PlatformUserID)

	data := url.Values{}
	data.Set("message", caption(content))
	data.Set("access_token", accessToken)

	status, body, err := postForm(ctx, a.client, feedURL, data)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return &transfer.PostResult{
			Success:  false,
			Platform: a.Name(),
			Error:    string(body),
			Message:  "Failed to post to Facebook",
		}, nil
	}

	var published struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &published); err != nil {
		return nil, fmt.Errorf("failed to decode publish response: %w", err)
	}

	return &transfer.PostResult{
		Success:  true,
		Platform: a.Name(),
		PostID:   published.ID,
		Message:  "Posted to Facebook successfully",
	}, nil
}
