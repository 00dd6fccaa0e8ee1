package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"orcado_server/lib"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokenSource struct {
	token string
	err   error
}

func (s *staticTokenSource) GetAccessToken(ctx context.Context) (string, error) {
	return s.token, s.err
}

func newBlingService(apiBase, token string) *BlingService {
	cfg := &structs.Config{Bling: &structs.BlingConfig{APIBase: apiBase}}
	return NewBlingService(gecho.NewDefaultLogger(), cfg, &staticTokenSource{token: token})
}

func TestBlingGetSendsBearerAndParams(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	bs := newBlingService(server.URL, "access-123")

	raw, err := bs.Get(context.Background(), "/produtos", map[string]string{
		"pagina": "1",
		"limite": "20",
		"nome":   "", // empty values are dropped
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"data":[]}`, string(raw))
	assert.Equal(t, "Bearer access-123", gotAuth)
	assert.Contains(t, gotQuery, "pagina=1")
	assert.Contains(t, gotQuery, "limite=20")
	assert.NotContains(t, gotQuery, "nome")
}

func TestBlingNotConnected(t *testing.T) {
	bs := newBlingService("http://unused", "")

	_, err := bs.Get(context.Background(), "/produtos", nil)
	require.Error(t, err)

	var integ *lib.IntegrationError
	require.ErrorAs(t, err, &integ)
	assert.Equal(t, http.StatusUnauthorized, integ.Status)
}

func TestBlingErrorCarriesUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"FORBIDDEN"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	bs := newBlingService(server.URL, "access-123")

	_, err := bs.Get(context.Background(), "/contatos", nil)
	require.Error(t, err)

	var integ *lib.IntegrationError
	require.ErrorAs(t, err, &integ)
	assert.Equal(t, http.StatusForbidden, integ.Status)
	assert.Contains(t, integ.Message, "FORBIDDEN")
}

func TestSubmitSalesOrder(t *testing.T) {
	t.Run("returns the external id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/pedidos/vendas", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.Write([]byte(`{"data":{"id":123456789}}`))
		}))
		defer server.Close()

		bs := newBlingService(server.URL, "access-123")

		id, err := bs.SubmitSalesOrder(context.Background(), &structs.BlingOrder{NumeroLoja: "ORC-20260901-100"})
		require.NoError(t, err)
		assert.Equal(t, "123456789", id)
	})

	t.Run("missing id is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		}))
		defer server.Close()

		bs := newBlingService(server.URL, "access-123")

		_, err := bs.SubmitSalesOrder(context.Background(), &structs.BlingOrder{})
		assert.Error(t, err)
	})
}
