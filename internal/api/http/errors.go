package http

import (
	"errors"
	"net/http"

	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/ovenbird/recipebox/pkg/httpx"
	"github.com/ovenbird/recipebox/pkg/slogx"
)

// writeServiceError maps service-layer failures onto the wire taxonomy:
// validation 400 (naming fields), bad credentials 400, non-owner 403,
// unknown id 404, everything else 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		httpx.WriteValidationError(w, vErr.Fields)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_credentials", "Unable to authenticate with provided credentials.")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden,
			"forbidden", "You do not have permission to perform this action.")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Not found.")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "An internal error occurred.")
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest,
		"invalid_request", "Request body must be valid JSON.")
}
