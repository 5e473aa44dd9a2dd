package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFacebook(serverURL string) *Facebook {
	return &Facebook{
		clientID:     "fb-client",
		clientSecret: "fb-secret",
		redirectURI:  "https://app.example.com/callback",
		client:       newHTTPClient(),
		authURL:      serverURL + "/dialog/oauth",
		tokenURL:     serverURL + "/oauth/access_token",
		graphURL:     serverURL,
	}
}

func TestFacebookRefreshExchangesCurrentToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "fb_exchange_token", r.Form.Get("grant_type"))
		assert.Equal(t, "current-token", r.Form.Get("fb_exchange_token"))
		assert.Equal(t, "fb-client", r.Form.Get("client_id"))
		fmt.Fprint(w, `{"access_token":"long-lived-token","expires_in":5183944}`)
	}))
	defer server.Close()

	a := newTestFacebook(server.URL)
	grant, err := a.RefreshToken(context.Background(), "", "current-token")
	require.NoError(t, err)
	assert.Equal(t, "long-lived-token", grant.AccessToken)
	assert.Equal(t, int64(5183944), grant.ExpiresIn)
}

func TestFacebookRefreshRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"token invalidated"}}`)
	}))
	defer server.Close()

	a := newTestFacebook(server.URL)
	_, err := a.RefreshToken(context.Background(), "", "revoked-token")

	var refreshErr *RefreshError
	require.ErrorAs(t, err, &refreshErr)
	assert.Equal(t, "facebook", refreshErr.Platform)
	assert.Equal(t, http.StatusUnauthorized, refreshErr.StatusCode)
}

func TestFacebookFetchProfileNameFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		fmt.Fprint(w, `{"id":"9001","name":"Lyra Test"}`)
	}))
	defer server.Close()

	a := newTestFacebook(server.URL)
	profile, err := a.FetchProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "9001", profile.ID)
	assert.Equal(t, "Lyra Test", profile.Username)
}

func TestFacebookPublishToFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/9001/feed", r.URL.Path)
		assert.Equal(t, "Launch day!\n\n#launch #startup", r.Form.Get("message"))
		assert.Equal(t, "tok", r.Form.Get("access_token"))
		fmt.Fprint(w, `{"id":"9001_123"}`)
	}))
	defer server.Close()

	a := newTestFacebook(server.URL)
	result, err := a.PublishPost(context.Background(), accountFixture("facebook"), "tok", contentFixture())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "9001_123", result.PostID)
}

func TestFacebookPublishRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"insufficient permission"}}`)
	}))
	defer server.Close()

	a := newTestFacebook(server.URL)
	result, err := a.PublishPost(context.Background(), accountFixture("facebook"), "tok", contentFixture())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "insufficient permission")
	assert.Equal(t, "Failed to post to Facebook", result.Message)
}
