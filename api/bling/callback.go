package bling

import (
	"net/http"
	"net/url"

	"github.com/MonkyMars/gecho"
)

// Callback handles GET /api/bling/callback, the OAuth redirect target. The
// state must match an unconsumed nonce issued by Connect; each nonce works
// exactly once, so a replayed callback is refused.
func (brm *BlingRoutesManager) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	state := query.Get("state")
	code := query.Get("code")

	valid, err := brm.stateService.Consume(ctx, state)
	if err != nil {
		brm.logger.Error("Failed to verify OAuth state", gecho.Field("error", err))
		brm.redirect(w, r, "error", "state_verification_failed")
		return
	}
	if !valid {
		brm.logger.Warn("OAuth callback with unknown or reused state")
		gecho.Forbidden(w, gecho.WithMessage("Invalid or expired state"), gecho.Send())
		return
	}

	if code == "" {
		brm.redirect(w, r, "error", "missing_code")
		return
	}

	if err := brm.tokenService.HandleCallback(ctx, code); err != nil {
		brm.logger.Error("Bling token exchange failed", gecho.Field("error", err))
		brm.redirect(w, r, "error", "token_exchange_failed")
		return
	}

	brm.logger.Info("Bling connected")
	brm.redirect(w, r, "bling", "connected")
}

// redirect sends the browser back to the admin frontend with the outcome in
// the query string. Without a configured frontend the outcome is returned as
// JSON instead.
func (brm *BlingRoutesManager) redirect(w http.ResponseWriter, r *http.Request, key, value string) {
	frontend := brm.cfg.Server.FrontendURL
	if frontend == "" {
		if key == "error" {
			gecho.InternalServerError(w, gecho.WithMessage(value), gecho.Send())
			return
		}
		gecho.Success(w, gecho.WithData(map[string]any{key: value}), gecho.Send())
		return
	}

	target, err := url.Parse(frontend)
	if err != nil {
		gecho.InternalServerError(w, gecho.Send())
		return
	}
	query := target.Query()
	query.Set(key, value)
	target.RawQuery = query.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}
