package auth

import (
	"net/http"

	"orcado_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListPending handles GET /api/auth/pending, listing accounts awaiting approval.
func (arm *AuthRoutesManager) ListPending(w http.ResponseWriter, r *http.Request) {
	users, err := arm.authService.ListPendingUsers(r.Context())
	if err != nil {
		handling.RespondError(w, arm.logger, err, "Failed to list pending accounts")
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"users": users,
			"count": len(users),
		}),
		gecho.Send(),
	)
}

// Approve handles POST /api/auth/approve/{id}.
func (arm *AuthRoutesManager) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid user id"), gecho.Send())
		return
	}

	if err := arm.authService.ApproveUser(r.Context(), id); err != nil {
		handling.RespondError(w, arm.logger, err, "Failed to approve account")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Account approved"),
		gecho.Send(),
	)
}
