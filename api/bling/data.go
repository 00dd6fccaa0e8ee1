package bling

import (
	"encoding/json"
	"net/http"
	"strconv"

	"orcado_server/api/middleware"
	"orcado_server/handling"
	"orcado_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// resourceEndpoints maps the frontend-facing resource names onto ERP list
// endpoints.
var resourceEndpoints = map[string]string{
	"products": "/produtos",
	"clients":  "/contatos",
	"stock":    "/estoques/saldos",
	"orders":   "/pedidos/vendas",
	"sellers":  "/vendedores",
}

// adminOnlyResources holds the proxies that expose other customers' data.
var adminOnlyResources = map[string]bool{
	"clients": true,
	"orders":  true,
	"sellers": true,
}

// FetchResource handles GET /api/bling/{resource}, proxying a paginated read
// to the ERP so the frontend never touches the access token.
func (brm *BlingRoutesManager) FetchResource(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")
	endpoint, ok := resourceEndpoints[resource]
	if !ok {
		gecho.NotFound(w, gecho.WithMessage("Unknown Bling resource"), gecho.Send())
		return
	}

	if adminOnlyResources[resource] {
		claims, ok := middleware.GetClaimsFromContext(r.Context())
		if !ok || claims.Role != tables.RoleAdmin {
			gecho.Forbidden(w, gecho.WithMessage("Admin access required"), gecho.Send())
			return
		}
	}

	pagination, err := handling.ParsePagination(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid pagination parameters"), gecho.Send())
		return
	}

	raw, err := brm.blingService.Get(r.Context(), endpoint, map[string]string{
		"pagina": strconv.Itoa(pagination.Pagina),
		"limite": strconv.Itoa(pagination.Limite),
	})
	if err != nil {
		handling.RespondError(w, brm.logger, err, "Failed to fetch Bling data")
		return
	}

	gecho.Success(w,
		gecho.WithData(json.RawMessage(raw)),
		gecho.Send(),
	)
}
