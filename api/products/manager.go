package products

import (
	"orcado_server/api/middleware"
	"orcado_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/api/products", prm.FetchAllProducts)
	r.Get("/api/products/{id}", prm.FetchProductByID)

	r.Group(func(r chi.Router) {
		r.Use(prm.mw.AdminAuthMiddleware)
		r.Post("/api/products", prm.CreateProduct)
	})
}
