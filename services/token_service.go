package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orcado_server/lib"
	"orcado_server/structs"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// refreshWindow is how close to expiry a stored access token is still
// considered usable without a refresh exchange.
const refreshWindow = 60 * time.Second

// TokenStore is the persistence capability the token service needs.
// Implemented by database.TokenRepository.
type TokenStore interface {
	Get(ctx context.Context) (*tables.BlingToken, error)
	Upsert(ctx context.Context, token *tables.BlingToken) error
}

// TokenService owns the Bling OAuth token pair: it hands out a valid access
// token, refreshing and replacing the singleton record when needed, and
// performs the authorization-code exchange on callback.
type TokenService struct {
	logger     *gecho.Logger
	cfg        *structs.Config
	store      TokenStore
	httpClient *http.Client
}

func NewTokenService(logger *gecho.Logger, cfg *structs.Config, store TokenStore) *TokenService {
	return &TokenService{
		logger:     logger,
		cfg:        cfg,
		store:      store,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetAccessToken returns a usable access token, or "" when the integration
// has never been connected. A token expiring within the refresh window is
// exchanged via the refresh grant and the new pair replaces the stored row.
// On refresh failure the stale row is left in place so a later retry can
// attempt the exchange again without re-authorization.
func (ts *TokenService) GetAccessToken(ctx context.Context) (string, error) {
	token, err := ts.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", nil
	}

	if time.Until(token.ExpiresAt) > refreshWindow {
		return token.AccessToken, nil
	}

	refreshed, err := ts.exchange(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {token.RefreshToken},
	})
	if err != nil {
		return "", err
	}

	newToken := &tables.BlingToken{
		AccessToken:  refreshed.AccessToken,
		RefreshToken: refreshed.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(refreshed.ExpiresIn) * time.Second),
		TokenType:    refreshed.TokenType,
		Scope:        refreshed.Scope,
		CreatedAt:    time.Now(),
	}
	// Bling may omit the refresh token on a refresh grant; keep the old one.
	if newToken.RefreshToken == "" {
		newToken.RefreshToken = token.RefreshToken
	}

	if err := ts.store.Upsert(ctx, newToken); err != nil {
		return "", err
	}

	ts.logger.Info("Bling access token refreshed",
		gecho.Field("expires_at", newToken.ExpiresAt))

	return newToken.AccessToken, nil
}

// HandleCallback exchanges an authorization code for the initial token pair
// and stores it. A response without a refresh token is rejected: without one
// the integration would silently die at first expiry.
func (ts *TokenService) HandleCallback(ctx context.Context, code string) error {
	response, err := ts.exchange(ctx, url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {ts.cfg.Bling.RedirectURI},
	})
	if err != nil {
		return err
	}

	if response.RefreshToken == "" {
		return lib.NewIntegrationError(0, "token response missing refresh_token")
	}

	token := &tables.BlingToken{
		AccessToken:  response.AccessToken,
		RefreshToken: response.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(response.ExpiresIn) * time.Second),
		TokenType:    response.TokenType,
		Scope:        response.Scope,
		CreatedAt:    time.Now(),
	}

	return ts.store.Upsert(ctx, token)
}

// IsConnected reports whether a token pair has ever been stored.
func (ts *TokenService) IsConnected(ctx context.Context) (bool, error) {
	token, err := ts.store.Get(ctx)
	if err != nil {
		return false, err
	}
	return token != nil && token.AccessToken != "", nil
}

// BuildConnectURL issues a state nonce through the guard and assembles the
// authorize redirect URL.
func (ts *TokenService) BuildConnectURL(ctx context.Context, states *StateService) (string, error) {
	bling := ts.cfg.Bling
	if bling.ClientID == "" || bling.RedirectURI == "" {
		return "", lib.NewIntegrationError(0, "Bling OAuth is not configured")
	}

	state, err := states.Issue(ctx)
	if err != nil {
		return "", err
	}

	authURL, err := url.Parse(bling.AuthorizeURL)
	if err != nil {
		return "", err
	}
	query := authURL.Query()
	query.Set("response_type", "code")
	query.Set("client_id", bling.ClientID)
	query.Set("state", state)
	query.Set("redirect_uri", bling.RedirectURI)
	authURL.RawQuery = query.Encode()

	return authURL.String(), nil
}

// exchange posts a form-encoded grant to the token endpoint with Basic auth.
func (ts *TokenService) exchange(ctx context.Context, form url.Values) (*structs.BlingTokenResponse, error) {
	bling := ts.cfg.Bling
	if bling.ClientID == "" || bling.ClientSecret == "" {
		return nil, lib.NewIntegrationError(0, "Bling OAuth is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bling.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	basic := base64.StdEncoding.EncodeToString([]byte(bling.ClientID + ":" + bling.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return nil, &lib.IntegrationError{Message: "token endpoint unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("token exchange failed with status %d", resp.StatusCode)
		}
		return nil, lib.NewIntegrationError(resp.StatusCode, "%s", msg)
	}

	var tokenResp structs.BlingTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, &lib.IntegrationError{Message: "invalid token response", Err: err}
	}

	return &tokenResp, nil
}
