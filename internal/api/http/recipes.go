package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ovenbird/recipebox/internal/api/domain"
	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/pkg/httpx"
)

type recipeResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       domain.Price `json:"price"`
	Link        string       `json:"link"`
	Description string       `json:"description"`
	User        string       `json:"user"`
}

func newRecipeResponse(rec domain.Recipe) recipeResponse {
	return recipeResponse{
		ID:          rec.ID,
		Title:       rec.Title,
		TimeMinutes: rec.TimeMinutes,
		Price:       rec.Price,
		Link:        rec.Link,
		Description: rec.Description,
		User:        rec.UserID,
	}
}

// recipeRequest mirrors the writable recipe fields. Pointer fields
// distinguish "absent" from "zero" for partial updates. Client-supplied id
// and user fields simply have nowhere to land.
type recipeRequest struct {
	Title       *string       `json:"title"`
	TimeMinutes *int          `json:"time_minutes"`
	Price       *domain.Price `json:"price"`
	Link        *string       `json:"link"`
	Description *string       `json:"description"`
}

func (req *recipeRequest) toInput() service.RecipeInput {
	return service.RecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
	}
}

// decodeRecipeRequest parses the body, turning price parse failures into a
// field-level validation error instead of a generic bad-JSON response.
func decodeRecipeRequest(w http.ResponseWriter, r *http.Request) (*recipeRequest, bool) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		switch {
		case errors.Is(err, domain.ErrPricePrecision):
			httpx.WriteValidationError(w, map[string]string{
				"price": "Ensure that there are no more than 2 decimal places.",
			})
		case errors.Is(err, domain.ErrPriceNegative):
			httpx.WriteValidationError(w, map[string]string{
				"price": "Ensure this value is greater than or equal to 0.",
			})
		case errors.Is(err, domain.ErrPriceInvalid):
			httpx.WriteValidationError(w, map[string]string{
				"price": "A valid number is required.",
			})
		default:
			writeBadJSON(w)
		}
		return nil, false
	}
	return &req, true
}

// RecipesHandler serves the owner-scoped recipe CRUD surface.
type RecipesHandler struct {
	RecipeService *service.RecipeService
}

func (h *RecipesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, _ := httpx.PrincipalFromContext(ctx)
	recipes, err := h.RecipeService.List(ctx, principal.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]recipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		out = append(out, newRecipeResponse(rec))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *RecipesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, _ := httpx.PrincipalFromContext(ctx)
	req, ok := decodeRecipeRequest(w, r)
	if !ok {
		return
	}

	rec, err := h.RecipeService.Create(ctx, principal.UserID, req.toInput())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newRecipeResponse(rec))
}

func (h *RecipesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, _ := httpx.PrincipalFromContext(ctx)
	rec, err := h.RecipeService.Get(ctx, principal.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newRecipeResponse(rec))
}

func (h *RecipesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *RecipesHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *RecipesHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx := r.Context()

	principal, _ := httpx.PrincipalFromContext(ctx)
	req, ok := decodeRecipeRequest(w, r)
	if !ok {
		return
	}

	rec, err := h.RecipeService.Update(ctx, principal.UserID, r.PathValue("id"), req.toInput(), partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newRecipeResponse(rec))
}

func (h *RecipesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, _ := httpx.PrincipalFromContext(ctx)
	if err := h.RecipeService.Delete(ctx, principal.UserID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
