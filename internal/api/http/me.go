package http

import (
	"encoding/json"
	"net/http"

	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/pkg/httpx"
	"github.com/ovenbird/recipebox/pkg/slogx"
)

// MeHandler serves the authenticated user's own profile.
type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
		return
	}

	u, err := h.UserService.GetProfile(ctx, principal.UserID)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to load profile", "user_id", principal.UserID, "err", err)
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(u))
}

func (h *MeHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
		return
	}

	// Unknown fields are ignored; email is deliberately not updatable here.
	var req struct {
		Name     *string `json:"name"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	u, err := h.UserService.UpdateProfile(ctx, principal.UserID, service.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newUserResponse(u))
}
