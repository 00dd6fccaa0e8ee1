package quotes

import (
	"net/http"

	"orcado_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListQuotes handles GET /api/quotes, the admin review queue.
func (qrm *QuoteRoutesManager) ListQuotes(w http.ResponseWriter, r *http.Request) {
	summaries, err := qrm.quoteService.ListQuotes(r.Context())
	if err != nil {
		handling.RespondError(w, qrm.logger, err, "Failed to list quotes")
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"quotes": summaries,
			"count":  len(summaries),
		}),
		gecho.Send(),
	)
}

// FetchQuoteByID handles GET /api/quotes/{id}.
func (qrm *QuoteRoutesManager) FetchQuoteByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid quote id"), gecho.Send())
		return
	}

	quote, err := qrm.quoteService.GetQuote(r.Context(), id)
	if err != nil {
		handling.RespondError(w, qrm.logger, err, "Failed to fetch quote")
		return
	}

	gecho.Success(w,
		gecho.WithData(quote),
		gecho.Send(),
	)
}
