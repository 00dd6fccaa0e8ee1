package auth

import (
	"orcado_server/api/middleware"
	"orcado_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService *services.AuthService
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
		mw:          mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", arm.Register)
		r.Post("/login", arm.Login)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.UserAuthMiddleware)
			r.Get("/me", arm.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.AdminAuthMiddleware)
			r.Get("/pending", arm.ListPending)
			r.Post("/approve/{id}", arm.Approve)
		})
	})
}
