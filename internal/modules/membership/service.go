package membership

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Service manages one kind of (user, recipe) membership. Favorites and the
// shopping cart are two instances over different stores.
type Service struct {
	kind    string
	store   Store
	recipes RecipeLookup
}

func NewService(kind string, store Store, recipes RecipeLookup) *Service {
	return &Service{kind: kind, store: store, recipes: recipes}
}

func (s *Service) Kind() string { return s.kind }

// Add puts the recipe into the user's set and returns the recipe.
// A second Add for the same pair fails with ErrAlreadyExists, also when two
// requests race and the unique index rejects the loser.
func (s *Service) Add(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("load recipe: %w", err)
	}

	if err := s.store.Add(ctx, userID, recipeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyExists
		case errors.Is(err, repository.ErrForeignKey):
			// рецепт удалён между проверкой и вставкой
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("add to %s: %w", s.kind, err)
	}
	return recipe, nil
}

// Remove takes the recipe out of the user's set; ErrNotFound when it was not there.
func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	exists, err := s.recipes.Exists(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("check recipe: %w", err)
	}
	if !exists {
		return ErrRecipeNotFound
	}

	if err := s.store.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("remove from %s: %w", s.kind, err)
	}
	return nil
}
