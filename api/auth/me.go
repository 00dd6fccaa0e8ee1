package auth

import (
	"net/http"

	"orcado_server/api/middleware"
	"orcado_server/handling"

	"github.com/MonkyMars/gecho"
)

// Me handles GET /api/auth/me, returning the authenticated account.
func (arm *AuthRoutesManager) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	user, err := arm.authService.GetUser(ctx, claims.Sub)
	if err != nil {
		handling.RespondError(w, arm.logger, err, "Failed to load account")
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
