// Package controllers contains the HTTP handlers. Controllers stay thin:
// decode and validate input, call one service method, map the result onto
// the JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/logger"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
)

// fail maps domain errors onto HTTP statuses. Anything unrecognized is a
// 500 with a generic message; the detail goes to the log, not the client.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, models.ErrOutOfStock):
		response.Conflict(w, err.Error())
	case errors.Is(err, models.ErrUploadFailed):
		response.Error(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, models.ErrEmailTaken):
		response.Conflict(w, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		response.Unauthorized(w)
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}
