package quotes

import (
	"net/http"

	"orcado_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RejectQuote handles POST /api/quotes/{id}/reject.
func (qrm *QuoteRoutesManager) RejectQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid quote id"), gecho.Send())
		return
	}

	quote, err := qrm.quoteService.Reject(r.Context(), id)
	if err != nil {
		handling.RespondError(w, qrm.logger, err, "Failed to reject quote")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Quote rejected"),
		gecho.WithData(map[string]any{
			"id":           quote.Id,
			"order_number": quote.OrderNumber,
			"status":       quote.Status,
		}),
		gecho.Send(),
	)
}
