package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/pkg/httpx"
	"github.com/ovenbird/recipebox/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

type bootstrapRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// ServeHTTP creates the initial superuser account. The endpoint pretends not
// to exist unless a bootstrap token is configured.
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	if !h.BootstrapService.Enabled() {
		httpx.WriteError(w, http.StatusNotFound, "not_found",
			"Superuser bootstrap is not enabled")
		return
	}

	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized",
			"Bootstrap token is required in X-Bootstrap-Token header")
		return
	}

	var req bootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	u, err := h.BootstrapService.CreateSuperuser(r.Context(), token, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrBootstrapUnauthorized) {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized",
				"Invalid bootstrap token")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	l.Info("superuser bootstrapped", "user_id", u.ID)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, newUserResponse(u))
}
