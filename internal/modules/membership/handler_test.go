package membership

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/repository"
	"foodgram/internal/testutil"
	"foodgram/internal/testutil/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipEndpoints(t *testing.T) {
	db := testutil.OpenDB(t)
	recipes := repository.NewRecipeRepository(db)
	h := NewHandler(
		NewService("favorites", repository.NewFavoriteRepository(db), recipes),
		NewService("shopping cart", repository.NewShoppingCartRepository(db), recipes),
	)
	r, _, protected := apitest.Router()
	h.RegisterRoutes(protected)

	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	tag := testutil.CreateTag(t, db, "dinner")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	soup := testutil.CreateRecipe(t, db, author, "Soup", []*domain.Tag{tag},
		[]testutil.IngredientAmount{{Ingredient: salt, Amount: 3}})
	base := "/api/recipes/" + strconv.FormatInt(soup.ID, 10)

	for _, suffix := range []string{"/favorite", "/shopping_cart"} {
		t.Run(suffix, func(t *testing.T) {
			rr := apitest.Do(r, http.MethodPost, base+suffix, nil, 0)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)

			rr = apitest.Do(r, http.MethodPost, base+suffix, nil, reader.ID)
			require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
			var short recipe.ShortRecipeResponse
			apitest.Decode(t, rr, &short)
			assert.Equal(t, recipe.ShortRecipeResponse{ID: soup.ID, Name: "Soup", CookingTime: 10}, short)

			rr = apitest.Do(r, http.MethodPost, base+suffix, nil, reader.ID)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, "ALREADY_EXISTS", apitest.Decode(t, rr, nil).Error.Code)

			rr = apitest.Do(r, http.MethodDelete, base+suffix, nil, reader.ID)
			assert.Equal(t, http.StatusNoContent, rr.Code)

			rr = apitest.Do(r, http.MethodDelete, base+suffix, nil, reader.ID)
			assert.Equal(t, http.StatusNotFound, rr.Code)

			rr = apitest.Do(r, http.MethodPost, "/api/recipes/9999"+suffix, nil, reader.ID)
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// vanishingRecipes deletes the recipe right after the lookup, the way a
// concurrent DELETE by its author would.
type vanishingRecipes struct {
	*repository.RecipeRepository
}

func (v vanishingRecipes) GetByID(ctx context.Context, id, viewerID int64) (*domain.Recipe, error) {
	recipe, err := v.RecipeRepository.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if err := v.RecipeRepository.Delete(ctx, id); err != nil {
		return nil, err
	}
	return recipe, nil
}

func TestMembershipEndpoints_RecipeDeletedConcurrently(t *testing.T) {
	db := testutil.OpenDB(t)
	recipes := vanishingRecipes{repository.NewRecipeRepository(db)}
	h := NewHandler(
		NewService("favorites", repository.NewFavoriteRepository(db), recipes),
		NewService("shopping cart", repository.NewShoppingCartRepository(db), recipes),
	)
	r, _, protected := apitest.Router()
	h.RegisterRoutes(protected)

	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")
	tag := testutil.CreateTag(t, db, "dinner")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")

	for _, suffix := range []string{"/favorite", "/shopping_cart"} {
		t.Run(suffix, func(t *testing.T) {
			soup := testutil.CreateRecipe(t, db, author, "Soup"+suffix, []*domain.Tag{tag},
				[]testutil.IngredientAmount{{Ingredient: salt, Amount: 3}})

			rr := apitest.Do(r, http.MethodPost, "/api/recipes/"+strconv.FormatInt(soup.ID, 10)+suffix, nil, reader.ID)
			require.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())
			assert.Equal(t, "Recipe not found", apitest.Decode(t, rr, nil).Error.Message)
		})
	}
}
