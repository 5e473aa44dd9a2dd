package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstagram(serverURL string) *Instagram {
	return &Instagram{
		clientID:     "ig-client",
		clientSecret: "ig-secret",
		redirectURI:  "https://app.example.com/callback",
		client:       newHTTPClient(),
		authURL:      serverURL + "/oauth/authorize",
		tokenURL:     serverURL + "/oauth/access_token",
		graphURL:     serverURL,
	}
}

func TestInstagramAuthorizationURL(t *testing.T) {
	a := newTestInstagram("https://api.instagram.com")

	raw := a.AuthorizationURL("state-123")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "ig-client", q.Get("client_id"))
	assert.Equal(t, "user_profile,user_media", q.Get("scope"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "state-123", q.Get("state"))
}

func TestInstagramExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "the-code", r.Form.Get("code"))
		assert.Equal(t, "ig-client", r.Form.Get("client_id"))
		fmt.Fprint(w, `{"access_token":"tok-1","expires_in":3600}`)
	}))
	defer server.Close()

	a := newTestInstagram(server.URL)
	grant, err := a.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", grant.AccessToken)
	assert.Equal(t, int64(3600), grant.ExpiresIn)
}

func TestInstagramExchangeCodeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error_message":"Invalid authorization code"}`)
	}))
	defer server.Close()

	a := newTestInstagram(server.URL)
	_, err := a.ExchangeCode(context.Background(), "stale-code")
	require.Error(t, err)

	var exchangeErr *TokenExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	assert.Equal(t, "instagram", exchangeErr.Platform)
	assert.Equal(t, http.StatusBadRequest, exchangeErr.StatusCode)
	assert.Contains(t, exchangeErr.Body, "Invalid authorization code")
}

func TestInstagramRefreshUsesAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/refresh_access_token", r.URL.Path)
		assert.Equal(t, "ig_refresh_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "current-token", r.URL.Query().Get("access_token"))
		fmt.Fprint(w, `{"access_token":"fresh-token","expires_in":5184000}`)
	}))
	defer server.Close()

	a := newTestInstagram(server.URL)
	grant, err := a.RefreshToken(context.Background(), "", "current-token")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", grant.AccessToken)
}

func TestInstagramRefreshWithoutAccessToken(t *testing.T) {
	a := newTestInstagram("http://127.0.0.1:0")

	_, err := a.RefreshToken(context.Background(), "unused", "")
	var refreshErr *RefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.Equal(t, "no access token available", refreshErr.Reason)
}

func TestInstagramPublishTwoPhase(t *testing.T) {
	var containerCalls, publishCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.URL.Path {
		case "/9001/media":
			containerCalls++
			assert.Equal(t, "Launch day!\n\n#launch #startup", r.Form.Get("caption"))
			fmt.Fprint(w, `{"id":"container-1"}`)
		case "/9001/media_publish":
			publishCalls++
			assert.Equal(t, "container-1", r.Form.Get("creation_id"))
			fmt.Fprint(w, `{"id":"post-55"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	a := newTestInstagram(server.URL)
	result, err := a.PublishPost(context.Background(), accountFixture("instagram"), "tok", contentFixture())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "post-55", result.PostID)
	assert.Equal(t, 1, containerCalls)
	assert.Equal(t, 1, publishCalls)
}

func TestInstagramPublishContainerFailureSkipsPublish(t *testing.T) {
	var publishCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/9001/media":
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"message":"caption rejected"}}`)
		case "/9001/media_publish":
			publishCalls++
		}
	}))
	defer server.Close()

	a := newTestInstagram(server.URL)
	result, err := a.PublishPost(context.Background(), accountFixture("instagram"), "tok", contentFixture())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "caption rejected")
	assert.Equal(t, 0, publishCalls, "publish phase must be skipped when the container fails")
}

func TestInstagramPublishTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	a := newTestInstagram(server.URL)
	result, err := a.PublishPost(context.Background(), accountFixture("instagram"), "tok", contentFixture())
	require.Error(t, err)
	assert.Nil(t, result)
}
