package handling

import (
	"errors"
	"net/http"

	"orcado_server/lib"

	"github.com/MonkyMars/gecho"
)

// RespondError maps the service error taxonomy onto an HTTP response. The
// message shown to the client is the error text for expected failures and a
// generic one for anything unexpected.
func RespondError(w http.ResponseWriter, logger *gecho.Logger, err error, msg string) {
	var ve *lib.ValidationError
	if errors.As(err, &ve) {
		gecho.BadRequest(w,
			gecho.WithMessage("Validation failed"),
			gecho.WithData(ve.Errors),
			gecho.Send(),
		)
		return
	}

	status := lib.StatusFromError(err)

	switch status {
	case http.StatusBadRequest, http.StatusConflict:
		// No dedicated 409 responder; a conflicting transition is reported
		// as a bad request with the conflict in the message.
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case http.StatusUnauthorized:
		gecho.Unauthorized(w, gecho.WithMessage(err.Error()), gecho.Send())
	case http.StatusForbidden:
		gecho.Forbidden(w, gecho.WithMessage(err.Error()), gecho.Send())
	case http.StatusNotFound:
		gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())
	default:
		logger.Error("An error occurred",
			gecho.Field("error", err),
			gecho.Field("msg", msg),
			gecho.WithCallerSkip(3))
		gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.Send())
	}
}
