package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orcado_server/lib"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
)

// accessTokenSource decouples the API client from the token service so tests
// can hand it a fixed token.
type accessTokenSource interface {
	GetAccessToken(ctx context.Context) (string, error)
}

// BlingService is the HTTP client for the Bling v3 API. Every call obtains a
// valid access token first; a missing token means the integration was never
// connected and surfaces as a 401-shaped IntegrationError. Non-2xx responses
// carry the upstream status so callers can surface an equivalent reply.
type BlingService struct {
	logger     *gecho.Logger
	cfg        *structs.Config
	tokens     accessTokenSource
	httpClient *http.Client
}

func NewBlingService(logger *gecho.Logger, cfg *structs.Config, tokens accessTokenSource) *BlingService {
	return &BlingService{
		logger:     logger,
		cfg:        cfg,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get performs an authenticated GET against the API. Empty param values are
// dropped, matching what the ERP expects.
func (bs *BlingService) Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	accessToken, err := bs.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(bs.cfg.Bling.APIBase + endpoint)
	if err != nil {
		return nil, err
	}
	query := u.Query()
	for key, value := range params {
		if value == "" {
			continue
		}
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return bs.do(req)
}

// Post performs an authenticated JSON POST against the API.
func (bs *BlingService) Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	accessToken, err := bs.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bs.cfg.Bling.APIBase+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	return bs.do(req)
}

// SubmitSalesOrder posts the order payload and returns the external order id.
func (bs *BlingService) SubmitSalesOrder(ctx context.Context, order *structs.BlingOrder) (string, error) {
	raw, err := bs.Post(ctx, "/pedidos/vendas", order)
	if err != nil {
		return "", err
	}

	var response structs.BlingOrderResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", &lib.IntegrationError{Message: "invalid sales order response", Err: err}
	}
	if response.Data.Id == "" {
		return "", lib.NewIntegrationError(0, "sales order response missing id")
	}

	return response.Data.Id.String(), nil
}

func (bs *BlingService) accessToken(ctx context.Context) (string, error) {
	accessToken, err := bs.tokens.GetAccessToken(ctx)
	if err != nil {
		return "", err
	}
	if accessToken == "" {
		return "", lib.NewIntegrationError(http.StatusUnauthorized, "Bling is not connected")
	}
	return accessToken, nil
}

func (bs *BlingService) do(req *http.Request) (json.RawMessage, error) {
	resp, err := bs.httpClient.Do(req)
	if err != nil {
		return nil, &lib.IntegrationError{Message: "Bling API unreachable", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &lib.IntegrationError{Status: resp.StatusCode, Message: "failed to read Bling response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("Bling API returned status %d", resp.StatusCode)
		}
		bs.logger.Warn("Bling API call failed",
			gecho.Field("status", resp.StatusCode),
			gecho.Field("path", req.URL.Path))
		return nil, lib.NewIntegrationError(resp.StatusCode, "%s", msg)
	}

	return body, nil
}
