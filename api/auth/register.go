package auth

import (
	"net/http"

	"orcado_server/handling"
	"orcado_server/lib"
	"orcado_server/structs"

	"github.com/MonkyMars/gecho"
)

// Register handles POST /api/auth/register. New accounts wait for admin
// approval before they can log in; allowlisted admin emails skip the gate.
func (arm *AuthRoutesManager) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		handling.RespondError(w, arm.logger, err, "Invalid registration request")
		return
	}

	user, err := arm.authService.Register(ctx, request)
	if err != nil {
		handling.RespondError(w, arm.logger, err, "Failed to register")
		return
	}

	message := "Account created, waiting for approval"
	if user.Approved {
		message = "Account created"
	}

	gecho.Success(w,
		gecho.WithMessage(message),
		gecho.WithData(user),
		gecho.Send(),
	)
}
