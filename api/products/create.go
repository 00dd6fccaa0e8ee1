package products

import (
	"net/http"

	"orcado_server/api/middleware"
	"orcado_server/handling"
	"orcado_server/lib"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CreateProduct handles POST /api/products, admin only.
func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
	if err != nil {
		handling.RespondError(w, prm.logger, err, "Invalid product request")
		return
	}

	var createdBy *uuid.UUID
	if claims, ok := middleware.GetClaimsFromContext(ctx); ok {
		createdBy = &claims.Sub
	}

	product, err := prm.productService.CreateProduct(ctx, request, createdBy)
	if err != nil {
		handling.RespondError(w, prm.logger, err, "Failed to create product")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}
