package service

import (
	"context"
	"strings"

	"github.com/ovenbird/recipebox/internal/api/domain"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/ovenbird/recipebox/pkg/idx"
	"github.com/ovenbird/recipebox/pkg/slogx"
)

type RecipeService struct {
	Store store.Store
}

// RecipeInput carries client-supplied recipe fields. Nil means the field was
// absent from the request, which matters for partial updates. Any id or
// owner supplied by the client has already been discarded at the handler.
type RecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *domain.Price
	Link        *string
	Description *string
}

// List returns the caller's recipes, most recently created first.
func (s *RecipeService) List(ctx context.Context, userID string) ([]domain.Recipe, error) {
	return s.Store.Recipes().ListRecipesByUser(ctx, userID)
}

// Get resolves a recipe by id. The id space is global: an unknown id is
// store.ErrNotFound whoever asks, and a known id owned by someone else is
// ErrForbidden rather than a fake not-found.
func (s *RecipeService) Get(ctx context.Context, userID, id string) (domain.Recipe, error) {
	rec, err := s.Store.Recipes().GetRecipeByID(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if rec.UserID != userID {
		return domain.Recipe{}, ErrForbidden
	}
	return rec, nil
}

// Create stores a new recipe owned by the caller.
func (s *RecipeService) Create(ctx context.Context, userID string, in RecipeInput) (domain.Recipe, error) {
	l := slogx.FromContext(ctx)

	if err := validateRecipeInput(in, true); err != nil {
		return domain.Recipe{}, err
	}

	rec := domain.Recipe{
		ID:          idx.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(*in.Title),
		TimeMinutes: *in.TimeMinutes,
		Price:       *in.Price,
		Description: *in.Description,
	}
	if in.Link != nil {
		rec.Link = strings.TrimSpace(*in.Link)
	}

	if err := s.Store.Recipes().CreateRecipe(ctx, rec); err != nil {
		return domain.Recipe{}, err
	}

	l.Info("recipe created", "recipe_id", rec.ID, "user_id", userID)
	return rec, nil
}

// Update applies a full or partial update. Full updates require every
// writable field except link; partial updates touch only the supplied ones.
// The owner reference never changes.
func (s *RecipeService) Update(ctx context.Context, userID, id string, in RecipeInput, partial bool) (domain.Recipe, error) {
	var updated domain.Recipe
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.Recipes().GetRecipeByID(ctx, id)
		if err != nil {
			return err
		}
		if rec.UserID != userID {
			return ErrForbidden
		}

		// Resolution and ownership come first: a bad body against an
		// unknown id is still a not-found, and against someone else's
		// record still a forbidden.
		if err := validateRecipeInput(in, !partial); err != nil {
			return err
		}

		if in.Title != nil {
			rec.Title = strings.TrimSpace(*in.Title)
		}
		if in.TimeMinutes != nil {
			rec.TimeMinutes = *in.TimeMinutes
		}
		if in.Price != nil {
			rec.Price = *in.Price
		}
		if in.Description != nil {
			rec.Description = *in.Description
		}
		if in.Link != nil {
			rec.Link = strings.TrimSpace(*in.Link)
		} else if !partial {
			rec.Link = ""
		}

		if err := tx.Recipes().UpdateRecipe(ctx, rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return domain.Recipe{}, err
	}
	return updated, nil
}

// Delete permanently removes the caller's recipe.
func (s *RecipeService) Delete(ctx context.Context, userID, id string) error {
	l := slogx.FromContext(ctx)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.Recipes().GetRecipeByID(ctx, id)
		if err != nil {
			return err
		}
		if rec.UserID != userID {
			return ErrForbidden
		}
		if err := tx.Recipes().DeleteRecipe(ctx, id); err != nil {
			return err
		}
		l.Info("recipe deleted", "recipe_id", id, "user_id", userID)
		return nil
	})
}

// validateRecipeInput checks field-level constraints. When required is true
// (create and full update), every writable field except link must be present.
func validateRecipeInput(in RecipeInput, required bool) error {
	details := map[string]string{}

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		details["title"] = "This field may not be blank."
	} else if required && in.Title == nil {
		details["title"] = "This field is required."
	}

	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		details["description"] = "This field may not be blank."
	} else if required && in.Description == nil {
		details["description"] = "This field is required."
	}

	if in.TimeMinutes != nil && *in.TimeMinutes < 0 {
		details["time_minutes"] = "Ensure this value is greater than or equal to 0."
	} else if required && in.TimeMinutes == nil {
		details["time_minutes"] = "This field is required."
	}

	if required && in.Price == nil {
		details["price"] = "This field is required."
	}

	if len(details) > 0 {
		return &ValidationError{Fields: details}
	}
	return nil
}
