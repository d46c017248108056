package testutil

import (
	"fmt"
	"testing"

	"gorm.io/gorm"

	"foodgram/internal/domain"
)

func CreateUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "First " + username,
		LastName:     "Last " + username,
		PasswordHash: "x",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func CreateTag(t *testing.T, db *gorm.DB, slug string) *domain.Tag {
	t.Helper()
	var n int64
	db.Model(&domain.Tag{}).Count(&n)
	tag := &domain.Tag{
		Name:  slug,
		Color: fmt.Sprintf("#%06X", n+1),
		Slug:  slug,
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag %s: %v", slug, err)
	}
	return tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *domain.Ingredient {
	t.Helper()
	ing := &domain.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ing).Error; err != nil {
		t.Fatalf("create ingredient %s: %v", name, err)
	}
	return ing
}

// IngredientAmount pairs an ingredient with its amount for CreateRecipe.
type IngredientAmount struct {
	Ingredient *domain.Ingredient
	Amount     int
}

// CreateRecipe inserts a recipe with its association rows directly, bypassing validation.
func CreateRecipe(t *testing.T, db *gorm.DB, author *domain.User, name string, tags []*domain.Tag, items []IngredientAmount) *domain.Recipe {
	t.Helper()
	r := &domain.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "How to cook " + name,
		CookingTime: 10,
	}
	for _, tag := range tags {
		r.Tags = append(r.Tags, domain.RecipeTag{TagID: tag.ID})
	}
	for _, it := range items {
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{IngredientID: it.Ingredient.ID, Amount: it.Amount})
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create recipe %s: %v", name, err)
	}
	return r
}
