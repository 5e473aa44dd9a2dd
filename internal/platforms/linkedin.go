package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	config "github.com/lyrahq/lyra-backend/configs"
	"github.com/lyrahq/lyra-backend/internal/models"
	"github.com/lyrahq/lyra-backend/internal/transfer"
)

const (
	linkedinAuthURL  = "https://www.linkedin.com/oauth/v2/authorization"
	linkedinTokenURL = "https://www.linkedin.com/oauth/v2/accessToken"
	linkedinAPIURL   = "https://api.linkedin.com"
)

type Linkedin struct {
	clientID     string
	clientSecret string
	redirectURI  string
	client       *http.Client

	authURL  string
	tokenURL string
	apiURL   string
}

func NewLinkedin(cfg config.Config) *Linkedin {
	return &Linkedin{
		clientID:     cfg.LinkedinClientID,
		clientSecret: cfg.LinkedinClientSecret,
		redirectURI:  cfg.OAuthRedirectURI,
		client:       newHTTPClient(),
		authURL:      linkedinAuthURL,
		tokenURL:     linkedinTokenURL,
		apiURL:       linkedinAPIURL,
	}
}

func (a *Linkedin) Name() string { return models.PlatformLinkedin }

func (a *Linkedin) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Add("response_type", "code")
	params.Add("client_id", a.clientID)
	params.Add("redirect_uri", a.redirectURI)
	params.Add("scope", "w_member_social")
	params.Add("state", state)
	return fmt.Sprintf("%s?%s", a.authURL, params.Encode())
}

func (a *Linkedin) ExchangeCode(ctx context.Context, code string) (*transfer.TokenGrant, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", a.redirectURI)
	data.Set("client_id", a.clientID)
	data.Set("client_secret", a.clientSecret)

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

func (a *Linkedin) RefreshToken(ctx context.Context, refreshToken, accessToken string) (*transfer.TokenGrant, error) {
	if refreshToken == "" {
		return nil, &RefreshError{Platform: a.Name(), Reason: "no refresh token available"}
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", a.clientID)
	data.Set("client_secret", a.clientSecret)

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

// FetchProfile is the one bearer-header profile call; the other platforms
// take the token as a query parameter.
func (a *Linkedin) FetchProfile(ctx context.Context, accessToken string) (*transfer.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiURL+"/v2/people/~", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin profile fetch failed (status %d): %s", resp.StatusCode, body)
	}

	var result struct {
		ID        string `json:"id"`
		FirstName string `json:"localizedFirstName"`
		LastName  string `json:"localizedLastName"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	return &transfer.Profile{
		ID:       result.ID,
		Username: strings.TrimSpace(result.FirstName + " " + result.LastName),
	}, nil
}

// PublishPost creates a UGC post authored by the account's person URN with
// public visibility. LinkedIn answers 201 on success.
func (a *Linkedin) PublishPost(ctx context.Context, account *models.SocialAccount, accessToken string, content *models.GeneratedContent) (*transfer.PostResult, error) {
	payload := map[string]interface{}{
		"author":         fmt.Sprintf("urn:li:person:%s", account.PlatformUserID),
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]string{
					"text": caption(content),
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL+"/v2/ugcPosts", bytes.NewBuffer(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		return &transfer.PostResult{
			Success:  false,
			Platform: a.Name(),
			Error:    string(body),
			Message:  "Failed to post to LinkedIn",
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
		Message:  "Posted to LinkedIn successfully",
	}, nil
}
