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
	instagramAuthURL  = "https://api.instagram.com/oauth/authorize"
	instagramTokenURL = "https://api.instagram.com/oauth/access_token"
	instagramGraphURL = "https://graph.instagram.com"
)

type Instagram struct {
	clientID     string
	clientSecret string
	redirectURI  string
	client       *http.Client

	authURL  string
	tokenURL string
	graphURL string
}

func NewInstagram(cfg config.Config) *Instagram {
	return &Instagram{
		clientID:     cfg.InstagramClientID,
		clientSecret: cfg.InstagramClientSecret,
		redirectURI:  cfg.OAuthRedirectURI,
		client:       newHTTPClient(),
		authURL:      instagramAuthURL,
		tokenURL:     instagramTokenURL,
		graphURL:     instagramGraphURL,
	}
}

func (a *Instagram) Name() string { return models.PlatformInstagram }

func (a *Instagram) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Add("client_id", a.clientID)
	params.Add("redirect_uri", a.redirectURI)
	params.Add("scope", "user_profile,user_media")
	params.Add("response_type", "code")
	params.Add("state", state)
	return fmt.Sprintf("%s?%s", a.authURL, params.Encode())
}

func (a *Instagram) ExchangeCode(ctx context.Context, code string) (*transfer.TokenGrant, error) {
	data := url.Values{}
	data.Set("client_id", a.clientID)
	data.Set("client_secret", a.clientSecret)
	data.Set("grant_type", "authorization_code")
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

// RefreshToken uses the ig_refresh_token grant, which takes the current
// long-lived access token rather than a separate refresh credential.
func (a *Instagram) RefreshToken(ctx context.Context, refreshToken, accessToken string) (*transfer.TokenGrant, error) {
	if accessToken == "" {
		return nil, &RefreshError{Platform: a.Name(), Reason: "no access token available"}
	}

	endpoint := fmt.Sprintf("%s/refresh_access_token?grant_type=ig_refresh_token&access_token=%s",
		a.graphURL, url.QueryEscape(accessToken))

	status, body, err := getURL(ctx, a.client, endpoint)
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

func (a *Instagram) FetchProfile(ctx context.Context, accessToken string) (*transfer.Profile, error) {
	endpoint := fmt.Sprintf("%s/me?fields=id,username&access_token=%s",
		a.graphURL, url.QueryEscape(accessToken))

	status, body, err := getURL(ctx, a.client, endpoint)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("instagram profile fetch failed (status %d): %s", status, body)
	}

	var profile transfer.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return &profile, nil
}

// PublishPost runs the two-phase Graph API sequence: create a media container
// with the caption, then publish the container by its creation id. The
// publish call is skipped when container creation fails.
func (a *Instagram) PublishPost(ctx context.Context, account *models.SocialAccount, accessToken string, content *models.GeneratedContent) (*transfer.PostResult, error) {
	containerURL := fmt.Sprintf("%s/%s/media", a.graphURL, account.PlatformUserID)

	data := url.Values{}
	data.Set("caption", caption(content))
	data.Set("access_token", accessToken)

	status, body, err := postForm(ctx, a.client, containerURL, data)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return &transfer.PostResult{
			Success:  false,
			Platform: a.Name(),
			Error:    string(body),
			Message:  "Failed to post to Instagram",
		}, nil
	}

	var container struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &container); err != nil || container.ID == "" {
		return &transfer.PostResult{
			Success:  false,
			Platform: a.Name(),
			Error:    string(body),
			Message:  "Failed to post to Instagram",
		}, nil
	}

	publishURL := fmt.Sprintf("%s/%s/media_publish", a.graphURL, account.PlatformUserID)

	data = url.Values{}
	data.Set("creation_id", container.ID)
	data.Set("access_token", accessToken)

	status, body, err = postForm(ctx, a.client, publishURL, data)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return &transfer.PostResult{
			Success:  false,
			Platform: a.Name(),
			Error:    string(body),
			Message:  "Failed to post to Instagram",
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
		Message:  "Posted to Instagram successfully",
	}, nil
}
