package membership

import (
	"context"

	"foodgram/internal/domain"
)

// Store is a (user, recipe) set: favorites or the shopping cart.
type Store interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
}

type RecipeLookup interface {
	GetByID(ctx context.Context, id, viewerID int64) (*domain.Recipe, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
