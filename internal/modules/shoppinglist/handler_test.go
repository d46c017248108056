package shoppinglist

import (
	"net/http"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
	"foodgram/internal/testutil"
	"foodgram/internal/testutil/apitest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadShoppingCart(t *testing.T) {
	db := testutil.OpenDB(t)
	listRepo, err := repository.NewShoppingListRepositoryFromGorm(db)
	require.NoError(t, err)

	r, _, protected := apitest.Router()
	NewHandler(NewService(listRepo)).RegisterRoutes(protected)

	author := testutil.CreateUser(t, db, "author")
	buyer := testutil.CreateUser(t, db, "buyer")
	tag := testutil.CreateTag(t, db, "dinner")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	sugar := testutil.CreateIngredient(t, db, "Sugar", "g")

	a := testutil.CreateRecipe(t, db, author, "A", []*domain.Tag{tag},
		[]testutil.IngredientAmount{{Ingredient: salt, Amount: 5}})
	b := testutil.CreateRecipe(t, db, author, "B", []*domain.Tag{tag},
		[]testutil.IngredientAmount{{Ingredient: sugar, Amount: 10}, {Ingredient: salt, Amount: 3}})

	rr := apitest.Do(r, http.MethodGet, "/api/recipes/download_shopping_cart", nil, 0)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = apitest.Do(r, http.MethodGet, "/api/recipes/download_shopping_cart", nil, buyer.ID)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Список покупок:\n", rr.Body.String())

	cart := repository.NewShoppingCartRepository(db)
	ctx := t.Context()
	require.NoError(t, cart.Add(ctx, buyer.ID, a.ID))
	require.NoError(t, cart.Add(ctx, buyer.ID, b.ID))

	first := apitest.Do(r, http.MethodGet, "/api/recipes/download_shopping_cart", nil, buyer.ID)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "text/plain; charset=utf-8", first.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shopping_list.txt"`, first.Header().Get("Content-Disposition"))
	assert.Equal(t, "Список покупок:\nSalt - 8, g\nSugar - 10, g", first.Body.String())

	second := apitest.Do(r, http.MethodGet, "/api/recipes/download_shopping_cart", nil, buyer.ID)
	assert.Equal(t, first.Body.String(), second.Body.String())

	// Other carts do not leak in.
	rr = apitest.Do(r, http.MethodGet, "/api/recipes/download_shopping_cart", nil, author.ID)
	assert.Equal(t, "Список покупок:\n", rr.Body.String())
}
