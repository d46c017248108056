package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// ShoppingListItem is the total amount of one (name, unit) pair across a cart.
type ShoppingListItem struct {
	Name            string `db:"name"`
	MeasurementUnit string `db:"measurement_unit"`
	TotalAmount     int64  `db:"total_amount"`
}

// ShoppingListRepository runs the cart aggregation as a single read query.
type ShoppingListRepository struct {
	db *sqlx.DB
}

func NewShoppingListRepository(db *sqlx.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// NewShoppingListRepositoryFromGorm shares the connection pool owned by GORM.
func NewShoppingListRepositoryFromGorm(g *gorm.DB) (*ShoppingListRepository, error) {
	sqlDB, err := g.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	driver := "sqlite3"
	if g.Dialector.Name() == "postgres" {
		driver = "postgres"
	}
	return NewShoppingListRepository(sqlx.NewDb(sqlDB, driver)), nil
}

func shoppingListQuery(userID int64) (string, []any, error) {
	return sq.Select("i.name", "i.measurement_unit", "SUM(ri.amount) AS total_amount").
		From("shopping_cart sc").
		Join("recipe_ingredients ri ON ri.recipe_id = sc.recipe_id").
		Join("ingredients i ON i.id = ri.ingredient_id").
		Where(sq.Eq{"sc.user_id": userID}).
		GroupBy("i.name", "i.measurement_unit").
		OrderBy("i.name ASC", "i.measurement_unit ASC").
		ToSql()
}

// Aggregate sums ingredient amounts over every recipe in the user's cart,
// grouped by (name, unit) and ordered by name.
func (r *ShoppingListRepository) Aggregate(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	query, args, err := shoppingListQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("build shopping list query: %w", err)
	}

	items := []ShoppingListItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	return items, nil
}
