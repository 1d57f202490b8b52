package service_test

import (
	"context"
	"testing"

	"github.com/ovenbird/recipebox/internal/api/domain"
	"github.com/ovenbird/recipebox/internal/api/service"
	"github.com/ovenbird/recipebox/internal/api/store"
	"github.com/stretchr/testify/require"
)

func soupInput() service.RecipeInput {
	return service.RecipeInput{
		Title:       ptr("Soup"),
		TimeMinutes: ptr(10),
		Price:       ptr(domain.Price(350)),
		Description: ptr("hot soup"),
	}
}

func registerTwo(t *testing.T, st store.Store) (owner, other domain.User) {
	t.Helper()

	users := &service.UserService{Store: st}
	ctx := context.Background()

	owner, err := users.Register(ctx, "owner@example.com", "pw123456", "")
	require.NoError(t, err)
	other, err = users.Register(ctx, "other@example.com", "pw123456", "")
	require.NoError(t, err)
	return owner, other
}

func TestRecipeCreateValidation(t *testing.T) {
	st := newTestStore(t)
	recipes := &service.RecipeService{Store: st}
	ctx := context.Background()
	owner, _ := registerTwo(t, st)

	t.Run("description omitted", func(t *testing.T) {
		in := soupInput()
		in.Description = nil
		_, err := recipes.Create(ctx, owner.ID, in)
		requireFieldError(t, err, "description")
	})

	t.Run("description blank", func(t *testing.T) {
		in := soupInput()
		in.Description = ptr("   ")
		_, err := recipes.Create(ctx, owner.ID, in)
		requireFieldError(t, err, "description")
	})

	t.Run("title omitted", func(t *testing.T) {
		in := soupInput()
		in.Title = nil
		_, err := recipes.Create(ctx, owner.ID, in)
		requireFieldError(t, err, "title")
	})

	t.Run("negative time", func(t *testing.T) {
		in := soupInput()
		in.TimeMinutes = ptr(-1)
		_, err := recipes.Create(ctx, owner.ID, in)
		requireFieldError(t, err, "time_minutes")
	})

	t.Run("valid input succeeds", func(t *testing.T) {
		rec, err := recipes.Create(ctx, owner.ID, soupInput())
		require.NoError(t, err)
		require.Equal(t, owner.ID, rec.UserID)
		require.Equal(t, "Soup", rec.Title)
		require.Equal(t, domain.Price(350), rec.Price)
	})
}

func TestRecipeListIsOwnerScoped(t *testing.T) {
	st := newTestStore(t)
	recipes := &service.RecipeService{Store: st}
	ctx := context.Background()
	owner, other := registerTwo(t, st)

	first, err := recipes.Create(ctx, owner.ID, soupInput())
	require.NoError(t, err)

	in := soupInput()
	in.Title = ptr("Stew")
	second, err := recipes.Create(ctx, owner.ID, in)
	require.NoError(t, err)

	list, err := recipes.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID, "newest first")
	require.Equal(t, first.ID, list[1].ID)

	list, err = recipes.List(ctx, other.ID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRecipeOwnershipPolicy(t *testing.T) {
	st := newTestStore(t)
	recipes := &service.RecipeService{Store: st}
	ctx := context.Background()
	owner, other := registerTwo(t, st)

	rec, err := recipes.Create(ctx, owner.ID, soupInput())
	require.NoError(t, err)

	t.Run("unknown id is not found for anyone", func(t *testing.T) {
		_, err := recipes.Get(ctx, owner.ID, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
		require.ErrorIs(t, err, store.ErrNotFound)
		err = recipes.Delete(ctx, other.ID, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("non-owner access is forbidden, not hidden", func(t *testing.T) {
		_, err := recipes.Get(ctx, other.ID, rec.ID)
		require.ErrorIs(t, err, service.ErrForbidden)

		_, err = recipes.Update(ctx, other.ID, rec.ID, service.RecipeInput{Title: ptr("Stolen")}, true)
		require.ErrorIs(t, err, service.ErrForbidden)

		err = recipes.Delete(ctx, other.ID, rec.ID)
		require.ErrorIs(t, err, service.ErrForbidden)

		// Nothing changed.
		got, err := recipes.Get(ctx, owner.ID, rec.ID)
		require.NoError(t, err)
		require.Equal(t, "Soup", got.Title)
	})

	t.Run("owner can mutate and delete", func(t *testing.T) {
		got, err := recipes.Update(ctx, owner.ID, rec.ID, service.RecipeInput{Title: ptr("Better Soup")}, true)
		require.NoError(t, err)
		require.Equal(t, "Better Soup", got.Title)

		require.NoError(t, recipes.Delete(ctx, owner.ID, rec.ID))
		_, err = recipes.Get(ctx, owner.ID, rec.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRecipeUpdateModes(t *testing.T) {
	st := newTestStore(t)
	recipes := &service.RecipeService{Store: st}
	ctx := context.Background()
	owner, _ := registerTwo(t, st)

	in := soupInput()
	in.Link = ptr("https://example.com/soup")
	rec, err := recipes.Create(ctx, owner.ID, in)
	require.NoError(t, err)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		got, err := recipes.Update(ctx, owner.ID, rec.ID,
			service.RecipeInput{Price: ptr(domain.Price(425))}, true)
		require.NoError(t, err)
		require.Equal(t, domain.Price(425), got.Price)
		require.Equal(t, "Soup", got.Title)
		require.Equal(t, "https://example.com/soup", got.Link)
	})

	t.Run("full update requires all writable fields", func(t *testing.T) {
		_, err := recipes.Update(ctx, owner.ID, rec.ID,
			service.RecipeInput{Title: ptr("Just Title")}, false)
		requireFieldError(t, err, "description")
	})

	t.Run("resolution wins over validation", func(t *testing.T) {
		// A bad body never masks what the id lookup would have said.
		_, err := recipes.Update(ctx, owner.ID, "01ARZ3NDEKTSV4RRFFQ69G5FAV",
			service.RecipeInput{Title: ptr("Just Title")}, false)
		require.ErrorIs(t, err, store.ErrNotFound)

		other, err := (&service.UserService{Store: st}).Register(ctx,
			"late@example.com", "pw123456", "")
		require.NoError(t, err)

		_, err = recipes.Update(ctx, other.ID, rec.ID,
			service.RecipeInput{Title: ptr("Just Title")}, false)
		require.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("full update resets omitted link", func(t *testing.T) {
		got, err := recipes.Update(ctx, owner.ID, rec.ID, service.RecipeInput{
			Title:       ptr("Replaced"),
			TimeMinutes: ptr(20),
			Price:       ptr(domain.Price(999)),
			Description: ptr("replaced entirely"),
		}, false)
		require.NoError(t, err)
		require.Equal(t, "Replaced", got.Title)
		require.Empty(t, got.Link)
	})
}
