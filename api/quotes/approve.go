package quotes

import (
	"net/http"

	"orcado_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ApproveQuote handles POST /api/quotes/{id}/approve: the quote becomes a
// sales order in the ERP and is marked SENT.
func (qrm *QuoteRoutesManager) ApproveQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid quote id"), gecho.Send())
		return
	}

	quote, err := qrm.quoteService.Approve(r.Context(), id)
	if err != nil {
		handling.RespondError(w, qrm.logger, err, "Failed to approve quote")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Quote approved and sent"),
		gecho.WithData(map[string]any{
			"id":                quote.Id,
			"order_number":      quote.OrderNumber,
			"status":            quote.Status,
			"external_order_id": quote.ExternalOrderId,
		}),
		gecho.Send(),
	)
}
