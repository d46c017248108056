package recipe

import (
	"context"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// RecipeRepository defines the storage operations the recipe service needs
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, items []repository.IngredientAmount) error
	Update(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, items []repository.IngredientAmount) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id, viewerID int64) (*domain.Recipe, error)
	List(ctx context.Context, f repository.RecipeFilter, viewerID int64) ([]domain.Recipe, error)
	GetAuthorID(ctx context.Context, id int64) (int64, error)
	ExistsByAuthorText(ctx context.Context, authorID int64, text string, excludeID int64) (bool, error)
}

// CatalogLookup reports which of the given tag or ingredient ids exist.
type CatalogLookup interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// DuplicateChecker finds an earlier recipe of the same author with the same text.
type DuplicateChecker interface {
	ExistsByAuthorText(ctx context.Context, authorID int64, text string, excludeID int64) (bool, error)
}
