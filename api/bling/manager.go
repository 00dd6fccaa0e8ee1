package bling

import (
	"orcado_server/api/middleware"
	"orcado_server/services"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type BlingRoutesManager struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	tokenService *services.TokenService
	stateService *services.StateService
	blingService *services.BlingService
	mw           *middleware.Middleware
}

func NewBlingRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	tokenService *services.TokenService,
	stateService *services.StateService,
	blingService *services.BlingService,
	mw *middleware.Middleware,
) *BlingRoutesManager {
	return &BlingRoutesManager{
		logger:       logger,
		cfg:          cfg,
		tokenService: tokenService,
		stateService: stateService,
		blingService: blingService,
		mw:           mw,
	}
}

func (brm *BlingRoutesManager) RegisterRoutes(r chi.Router) {
	// The callback is hit by the browser coming back from Bling's consent
	// screen, so it cannot carry our bearer token.
	r.Get("/api/bling/callback", brm.Callback)

	r.Group(func(r chi.Router) {
		r.Use(brm.mw.AdminAuthMiddleware)
		r.Get("/api/bling/connect", brm.Connect)
		r.Get("/api/bling/status", brm.Status)
	})

	// Read proxies need a logged-in user; the sensitive ones additionally
	// require the admin role, checked in the handler per resource.
	r.Group(func(r chi.Router) {
		r.Use(brm.mw.UserAuthMiddleware)
		r.Get("/api/bling/{resource}", brm.FetchResource)
	})
}
