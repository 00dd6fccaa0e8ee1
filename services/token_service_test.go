package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenStoreFake struct {
	token   *tables.BlingToken
	getErr  error
	upserts int
}

func (f *tokenStoreFake) Get(ctx context.Context) (*tables.BlingToken, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.token, nil
}

func (f *tokenStoreFake) Upsert(ctx context.Context, token *tables.BlingToken) error {
	f.token = token
	f.upserts++
	return nil
}

func newTokenService(store TokenStore, tokenURL string) *TokenService {
	cfg := &structs.Config{
		Bling: &structs.BlingConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost/api/bling/callback",
			TokenURL:     tokenURL,
		},
	}
	return NewTokenService(gecho.NewDefaultLogger(), cfg, store)
}

func TestGetAccessTokenNeverConnected(t *testing.T) {
	store := &tokenStoreFake{}
	ts := newTokenService(store, "http://unused")

	token, err := ts.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestGetAccessTokenStillValid(t *testing.T) {
	store := &tokenStoreFake{token: &tables.BlingToken{
		AccessToken:  "valid-token",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}}
	ts := newTokenService(store, "http://unreachable.invalid")

	token, err := ts.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "valid-token", token)
	assert.Zero(t, store.upserts, "a valid token must not trigger a refresh")
}

func TestGetAccessTokenRefreshesNearExpiry(t *testing.T) {
	var gotGrant, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotGrant = r.Form.Get("grant_type")
		gotAuth = r.Header.Get("Authorization")

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "fresh-token",
			"refresh_token": "fresh-refresh",
			"expires_in":    21600,
			"token_type":    "Bearer",
		})
	}))
	defer server.Close()

	store := &tokenStoreFake{token: &tables.BlingToken{
		AccessToken:  "stale-token",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(30 * time.Second),
	}}
	ts := newTokenService(store, server.URL)

	token, err := ts.GetAccessToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, "refresh_token", gotGrant)
	assert.Contains(t, gotAuth, "Basic ")
	require.Equal(t, 1, store.upserts)
	assert.Equal(t, "fresh-refresh", store.token.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(21600*time.Second), store.token.ExpiresAt, 5*time.Second)
}

func TestGetAccessTokenKeepsOldRefreshTokenWhenOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh-token",
			"expires_in":   21600,
		})
	}))
	defer server.Close()

	store := &tokenStoreFake{token: &tables.BlingToken{
		AccessToken:  "stale-token",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}}
	ts := newTokenService(store, server.URL)

	_, err := ts.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "old-refresh", store.token.RefreshToken)
}

func TestGetAccessTokenRefreshFailureKeepsStoredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	stored := &tables.BlingToken{
		AccessToken:  "stale-token",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}
	store := &tokenStoreFake{token: stored}
	ts := newTokenService(store, server.URL)

	_, err := ts.GetAccessToken(context.Background())
	require.Error(t, err)
	assert.Same(t, stored, store.token, "a failed refresh must not overwrite the stored pair")
	assert.Zero(t, store.upserts)
}

func TestHandleCallbackStoresTokenPair(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "auth-code", r.Form.Get("code"))
		assert.Equal(t, "http://localhost/api/bling/callback", r.Form.Get("redirect_uri"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "first-token",
			"refresh_token": "first-refresh",
			"expires_in":    21600,
			"token_type":    "Bearer",
			"scope":         "pedidos contatos",
		})
	}))
	defer server.Close()

	store := &tokenStoreFake{}
	ts := newTokenService(store, server.URL)

	require.NoError(t, ts.HandleCallback(context.Background(), "auth-code"))
	require.NotNil(t, store.token)
	assert.Equal(t, "first-token", store.token.AccessToken)
	assert.Equal(t, "first-refresh", store.token.RefreshToken)
	assert.Equal(t, "pedidos contatos", store.token.Scope)
}

func TestHandleCallbackRejectsMissingRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "first-token",
			"expires_in":   21600,
		})
	}))
	defer server.Close()

	store := &tokenStoreFake{}
	ts := newTokenService(store, server.URL)

	err := ts.HandleCallback(context.Background(), "auth-code")
	require.Error(t, err)
	assert.Nil(t, store.token)
}

func TestBuildConnectURL(t *testing.T) {
	cfg := &structs.Config{
		Bling: &structs.BlingConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "http://localhost/api/bling/callback",
			AuthorizeURL: "https://www.bling.com.br/Api/v3/oauth/authorize",
			StateTTL:     10 * time.Minute,
		},
	}
	ts := NewTokenService(gecho.NewDefaultLogger(), cfg, &tokenStoreFake{})
	states := NewStateService(gecho.NewDefaultLogger(), cfg, newFakeNonceStore())

	connectURL, err := ts.BuildConnectURL(context.Background(), states)
	require.NoError(t, err)

	parsed, err := url.Parse(connectURL)
	require.NoError(t, err)
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "http://localhost/api/bling/callback", parsed.Query().Get("redirect_uri"))
	assert.Len(t, parsed.Query().Get("state"), 32)
}

func TestBuildConnectURLUnconfigured(t *testing.T) {
	cfg := &structs.Config{Bling: &structs.BlingConfig{}}
	ts := NewTokenService(gecho.NewDefaultLogger(), cfg, &tokenStoreFake{})
	states := NewStateService(gecho.NewDefaultLogger(), cfg, newFakeNonceStore())

	_, err := ts.BuildConnectURL(context.Background(), states)
	require.Error(t, err)
}

func TestIsConnected(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		ts := newTokenService(&tokenStoreFake{}, "http://unused")
		connected, err := ts.IsConnected(context.Background())
		require.NoError(t, err)
		assert.False(t, connected)
	})

	t.Run("connected", func(t *testing.T) {
		ts := newTokenService(&tokenStoreFake{token: &tables.BlingToken{AccessToken: "x"}}, "http://unused")
		connected, err := ts.IsConnected(context.Background())
		require.NoError(t, err)
		assert.True(t, connected)
	})
}
