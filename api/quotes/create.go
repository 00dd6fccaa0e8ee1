package quotes

import (
	"net/http"

	"orcado_server/api/middleware"
	"orcado_server/handling"
	"orcado_server/lib"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// CreateQuote handles POST /api/quotes, the storefront quote intake.
func (qrm *QuoteRoutesManager) CreateQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := lib.ExtractAndValidateBody[structs.QuoteRequest](r)
	if err != nil {
		handling.RespondError(w, qrm.logger, err, "Invalid quote request")
		return
	}

	var createdBy *uuid.UUID
	if claims, ok := middleware.GetClaimsFromContext(ctx); ok {
		createdBy = &claims.Sub
	}

	quote, err := qrm.quoteService.CreateQuoteFromRequest(ctx, request, createdBy)
	if err != nil {
		handling.RespondError(w, qrm.logger, err, "Failed to create quote")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Quote received"),
		gecho.WithData(map[string]any{
			"id":           quote.Id,
			"order_number": quote.OrderNumber,
			"status":       quote.Status,
		}),
		gecho.Send(),
	)
}
