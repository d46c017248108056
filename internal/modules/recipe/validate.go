package recipe

import (
	"context"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type IngredientInput struct {
	ID     int64
	Amount int
}

// Candidate is an unvalidated recipe submission. ID is zero on create.
type Candidate struct {
	ID          int64
	AuthorID    int64
	Name        string
	Text        string
	Image       string
	CookingTime int
	Tags        []int64
	Ingredients []IngredientInput
}

// ValidatedRecipe is ready to be handed to RecipeRepository.Create/Update.
type ValidatedRecipe struct {
	Recipe      domain.Recipe
	TagIDs      []int64
	Ingredients []repository.IngredientAmount
}

type Validator struct {
	tags        CatalogLookup
	ingredients CatalogLookup
	recipes     DuplicateChecker
}

func NewValidator(tags, ingredients CatalogLookup, recipes DuplicateChecker) *Validator {
	return &Validator{tags: tags, ingredients: ingredients, recipes: recipes}
}

// Validate checks c against the recipe rules and returns the first
// violation as a *ValidationError. It only reads from storage.
func (v *Validator) Validate(ctx context.Context, c Candidate) (*ValidatedRecipe, error) {
	if c.CookingTime < domain.MinCookingTime || c.CookingTime > domain.MaxCookingTime {
		return nil, invalid("cooking_time", ErrOutOfRange,
			"cooking time must be between %d and %d minutes, got %d",
			domain.MinCookingTime, domain.MaxCookingTime, c.CookingTime)
	}

	if err := v.validateTags(ctx, c.Tags); err != nil {
		return nil, err
	}
	if err := v.validateIngredients(ctx, c.Ingredients); err != nil {
		return nil, err
	}

	dup, err := v.recipes.ExistsByAuthorText(ctx, c.AuthorID, c.Text, c.ID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate recipe: %w", err)
	}
	if dup {
		return nil, invalid("text", ErrDuplicateRecipe, "you already have a recipe with this text")
	}

	out := &ValidatedRecipe{
		Recipe: domain.Recipe{
			ID:          c.ID,
			AuthorID:    c.AuthorID,
			Name:        c.Name,
			Text:        c.Text,
			Image:       c.Image,
			CookingTime: c.CookingTime,
		},
		TagIDs:      append([]int64(nil), c.Tags...),
		Ingredients: make([]repository.IngredientAmount, 0, len(c.Ingredients)),
	}
	for _, in := range c.Ingredients {
		out.Ingredients = append(out.Ingredients, repository.IngredientAmount{
			IngredientID: in.ID,
			Amount:       in.Amount,
		})
	}
	return out, nil
}

func (v *Validator) validateTags(ctx context.Context, tags []int64) error {
	if len(tags) == 0 {
		return invalid("tags", ErrInvalidTagSet, "at least one tag is required")
	}
	seen := make(map[int64]struct{}, len(tags))
	for _, id := range tags {
		if _, ok := seen[id]; ok {
			return invalid("tags", ErrInvalidTagSet, "tag %d is listed more than once", id)
		}
		seen[id] = struct{}{}
	}

	missing, err := missingIDs(ctx, v.tags, tags)
	if err != nil {
		return fmt.Errorf("look up tags: %w", err)
	}
	if len(missing) > 0 {
		return invalid("tags", ErrInvalidTagSet, "tag %d does not exist", missing[0])
	}
	return nil
}

func (v *Validator) validateIngredients(ctx context.Context, items []IngredientInput) error {
	if len(items) == 0 {
		return invalid("ingredients", ErrEmptyIngredientSet, "at least one ingredient is required")
	}

	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			return invalid("ingredients", ErrDuplicateIngredient, "ingredient %d is listed more than once", it.ID)
		}
		seen[it.ID] = struct{}{}
		ids = append(ids, it.ID)
	}

	// Every amount is checked, whatever its position.
	for _, it := range items {
		if it.Amount < domain.MinAmount {
			return invalid("ingredients", ErrNonPositiveAmount,
				"amount of ingredient %d must be at least %d, got %d", it.ID, domain.MinAmount, it.Amount)
		}
	}

	missing, err := missingIDs(ctx, v.ingredients, ids)
	if err != nil {
		return fmt.Errorf("look up ingredients: %w", err)
	}
	if len(missing) > 0 {
		return invalid("ingredients", ErrUnknownIngredient, "ingredient %d does not exist", missing[0])
	}
	return nil
}

// missingIDs returns the ids absent from the catalog, in request order.
func missingIDs(ctx context.Context, lookup CatalogLookup, ids []int64) ([]int64, error) {
	found, err := lookup.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
