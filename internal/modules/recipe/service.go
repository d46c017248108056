package recipe

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// ListFilter mirrors the query parameters of the recipe listing.
type ListFilter struct {
	TagSlugs         []string
	AuthorID         int64
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
}

type Service struct {
	recipes   RecipeRepository
	validator *Validator
}

func NewService(recipes RecipeRepository, tags, ingredients CatalogLookup) *Service {
	return &Service{
		recipes:   recipes,
		validator: NewValidator(tags, ingredients, recipes),
	}
}

// Create validates and stores a new recipe of authorID and returns it as
// the author sees it.
func (s *Service) Create(ctx context.Context, authorID int64, c Candidate) (*domain.Recipe, error) {
	c.ID = 0
	c.AuthorID = authorID

	v, err := s.validator.Validate(ctx, c)
	if err != nil {
		return nil, err
	}

	recipe := v.Recipe
	if err := s.recipes.Create(ctx, &recipe, v.TagIDs, v.Ingredients); err != nil {
		return nil, s.storageError(err)
	}
	return s.Get(ctx, recipe.ID, authorID)
}

// Update replaces the recipe content. Only the author may update; the author
// and publication date are kept.
func (s *Service) Update(ctx context.Context, id, userID int64, c Candidate) (*domain.Recipe, error) {
	if err := s.checkAuthor(ctx, id, userID); err != nil {
		return nil, err
	}
	c.ID = id
	c.AuthorID = userID

	v, err := s.validator.Validate(ctx, c)
	if err != nil {
		return nil, err
	}

	recipe := v.Recipe
	if err := s.recipes.Update(ctx, &recipe, v.TagIDs, v.Ingredients); err != nil {
		return nil, s.storageError(err)
	}
	return s.Get(ctx, id, userID)
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.checkAuthor(ctx, id, userID); err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		return s.storageError(err)
	}
	return nil
}

// Get returns the recipe with flags computed for viewerID (0 = anonymous).
func (s *Service) Get(ctx context.Context, id, viewerID int64) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, s.storageError(err)
	}
	return recipe, nil
}

func (s *Service) List(ctx context.Context, f ListFilter, viewerID int64) ([]domain.Recipe, error) {
	recipes, err := s.recipes.List(ctx, repository.RecipeFilter{
		TagSlugs:         f.TagSlugs,
		AuthorID:         f.AuthorID,
		IsFavorited:      f.IsFavorited,
		IsInShoppingCart: f.IsInShoppingCart,
		Limit:            f.Limit,
	}, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (s *Service) checkAuthor(ctx context.Context, id, userID int64) error {
	authorID, err := s.recipes.GetAuthorID(ctx, id)
	if err != nil {
		return s.storageError(err)
	}
	if authorID != userID {
		return ErrPermissionDenied
	}
	return nil
}

// storageError maps repository errors onto the recipe taxonomy. A unique
// violation that slipped past validation is a concurrent duplicate submission.
func (s *Service) storageError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return invalid("text", ErrDuplicateRecipe, "you already have a recipe with this text")
	case errors.Is(err, repository.ErrForeignKey):
		return invalid("non_field_errors", ErrInvalidTagSet, "recipe references a tag or ingredient that no longer exists")
	case errors.Is(err, repository.ErrConstraint):
		return invalid("non_field_errors", ErrOutOfRange, "recipe violates a storage constraint")
	}
	return err
}
