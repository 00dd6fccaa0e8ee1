package api

import (
	"orcado_server/api/auth"
	"orcado_server/api/bling"
	"orcado_server/api/health"
	"orcado_server/api/middleware"
	"orcado_server/api/products"
	"orcado_server/api/quotes"
	"orcado_server/database"
	"orcado_server/services"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	authRoutes    *auth.AuthRoutesManager
	blingRoutes   *bling.BlingRoutesManager
	healthRoutes  *health.HealthRoutesManager
	productRoutes *products.ProductRoutesManager
	quoteRoutes   *quotes.QuoteRoutesManager
}

func NewRouterManager(logger *gecho.Logger, db *database.DB, cfg *structs.Config, mw *middleware.Middleware) *routerManager {
	sm := services.NewServiceManager(logger, cfg, db)

	return &routerManager{
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
		blingRoutes:   bling.NewBlingRoutesManager(logger, cfg, sm.TokenService, sm.StateService, sm.BlingService, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
		productRoutes: products.NewProductRoutesManager(logger, sm.ProductService, mw),
		quoteRoutes:   quotes.NewQuoteRoutesManager(logger, sm.QuoteService, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.authRoutes.RegisterRoutes(r)
	rm.blingRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.quoteRoutes.RegisterRoutes(r)
}
