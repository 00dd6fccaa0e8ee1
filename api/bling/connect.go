package bling

import (
	"net/http"

	"orcado_server/handling"

	"github.com/MonkyMars/gecho"
)

// Connect handles GET /api/bling/connect: issues a fresh OAuth state and
// sends the browser to Bling's consent screen.
func (brm *BlingRoutesManager) Connect(w http.ResponseWriter, r *http.Request) {
	url, err := brm.tokenService.BuildConnectURL(r.Context(), brm.stateService)
	if err != nil {
		handling.RespondError(w, brm.logger, err, "Failed to start Bling authorization")
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

// Status handles GET /api/bling/status.
func (brm *BlingRoutesManager) Status(w http.ResponseWriter, r *http.Request) {
	connected, err := brm.tokenService.IsConnected(r.Context())
	if err != nil {
		handling.RespondError(w, brm.logger, err, "Failed to check Bling connection")
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"connected": connected}),
		gecho.Send(),
	)
}
