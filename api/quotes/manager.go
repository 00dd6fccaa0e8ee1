package quotes

import (
	"orcado_server/api/middleware"
	"orcado_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type QuoteRoutesManager struct {
	logger       *gecho.Logger
	quoteService *services.QuoteService
	mw           *middleware.Middleware
}

func NewQuoteRoutesManager(
	logger *gecho.Logger,
	quoteService *services.QuoteService,
	mw *middleware.Middleware,
) *QuoteRoutesManager {
	return &QuoteRoutesManager{
		logger:       logger,
		quoteService: quoteService,
		mw:           mw,
	}
}

func (qrm *QuoteRoutesManager) RegisterRoutes(r chi.Router) {
	// Intake needs a logged-in (and therefore admin-approved) account; the
	// quote is attributed to the submitter.
	r.Group(func(r chi.Router) {
		r.Use(qrm.mw.UserAuthMiddleware)
		r.Post("/api/quotes", qrm.CreateQuote)
	})

	r.Group(func(r chi.Router) {
		r.Use(qrm.mw.AdminAuthMiddleware)
		r.Get("/api/quotes", qrm.ListQuotes)
		r.Get("/api/quotes/{id}", qrm.FetchQuoteByID)
		r.Post("/api/quotes/{id}/approve", qrm.ApproveQuote)
		r.Post("/api/quotes/{id}/reject", qrm.RejectQuote)
	})
}
