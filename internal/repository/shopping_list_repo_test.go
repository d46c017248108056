package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain"
	"foodgram/internal/testutil"
)

func TestShoppingListRepository_Aggregate(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "author")
	shopper := testutil.CreateUser(t, db, "shopper")
	neighbour := testutil.CreateUser(t, db, "neighbour")
	tag := testutil.CreateTag(t, db, "dinner")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	sugar := testutil.CreateIngredient(t, db, "Sugar", "g")
	saltKg := testutil.CreateIngredient(t, db, "Salt", "kg")

	a := testutil.CreateRecipe(t, db, author, "A", []*domain.Tag{tag}, []testutil.IngredientAmount{{Ingredient: salt, Amount: 5}})
	b := testutil.CreateRecipe(t, db, author, "B", []*domain.Tag{tag}, []testutil.IngredientAmount{
		{Ingredient: salt, Amount: 3},
		{Ingredient: sugar, Amount: 10},
	})
	c := testutil.CreateRecipe(t, db, author, "C", []*domain.Tag{tag}, []testutil.IngredientAmount{{Ingredient: saltKg, Amount: 1}})

	cart := NewShoppingCartRepository(db)
	require.NoError(t, cart.Add(ctx, shopper.ID, a.ID))
	require.NoError(t, cart.Add(ctx, shopper.ID, b.ID))
	require.NoError(t, cart.Add(ctx, neighbour.ID, c.ID))
	require.NoError(t, cart.Add(ctx, neighbour.ID, a.ID))

	repo, err := NewShoppingListRepositoryFromGorm(db)
	require.NoError(t, err)

	items, err := repo.Aggregate(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingListItem{
		{Name: "Salt", MeasurementUnit: "g", TotalAmount: 8},
		{Name: "Sugar", MeasurementUnit: "g", TotalAmount: 10},
	}, items)

	items, err = repo.Aggregate(ctx, neighbour.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingListItem{
		{Name: "Salt", MeasurementUnit: "g", TotalAmount: 5},
		{Name: "Salt", MeasurementUnit: "kg", TotalAmount: 1},
	}, items, "same name with another unit is a separate line")

	items, err = repo.Aggregate(ctx, author.ID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestShoppingListRepository_QueryShape(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewShoppingListRepository(sqlx.NewDb(mockDB, "postgres"))

	mock.ExpectQuery(`SELECT i\.name, i\.measurement_unit, SUM\(ri\.amount\) AS total_amount FROM shopping_cart sc ` +
		`JOIN recipe_ingredients ri ON ri\.recipe_id = sc\.recipe_id JOIN ingredients i ON i\.id = ri\.ingredient_id ` +
		`WHERE sc\.user_id = \$1 GROUP BY i\.name, i\.measurement_unit ORDER BY i\.name ASC, i\.measurement_unit ASC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "measurement_unit", "total_amount"}).
			AddRow("Flour", "g", 500).
			AddRow("Milk", "ml", 250))

	items, err := repo.Aggregate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingListItem{
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 500},
		{Name: "Milk", MeasurementUnit: "ml", TotalAmount: 250},
	}, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShoppingListRepository_QueryError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewShoppingListRepository(sqlx.NewDb(mockDB, "sqlite3"))
	mock.ExpectQuery(`FROM shopping_cart sc .* WHERE sc\.user_id = \?`).
		WithArgs(int64(1)).
		WillReturnError(assert.AnError)

	_, err = repo.Aggregate(context.Background(), 1)
	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}
