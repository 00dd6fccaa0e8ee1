package auth

import (
	"errors"
	"net/http"

	"orcado_server/handling"
	"orcado_server/lib"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
)

// Login handles POST /api/auth/login.
func (arm *AuthRoutesManager) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		handling.RespondError(w, arm.logger, err, "Invalid login request")
		return
	}

	response, err := arm.authService.Login(ctx, request)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrInvalidCredentials):
			gecho.Unauthorized(w, gecho.WithMessage("Invalid email or password"), gecho.Send())
		case errors.Is(err, lib.ErrNotApproved):
			gecho.Forbidden(w, gecho.WithMessage("Account is waiting for approval"), gecho.Send())
		default:
			handling.RespondError(w, arm.logger, err, "Failed to log in")
		}
		return
	}

	gecho.Success(w,
		gecho.WithData(response),
		gecho.Send(),
	)
}
