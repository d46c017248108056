package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 2880 // two days
	MinAmount      = 1
)

// Recipe belongs to exactly one author; AuthorID and PubDate never change after creation.
//
// TextHash mirrors Text and backs the (author, text) unique index, since a
// btree index over an unbounded text column is not portable.
type Recipe struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	AuthorID    int64     `json:"author_id" gorm:"not null;index;uniqueIndex:idx_recipe_author_text"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	TextHash    string    `json:"-" gorm:"size:64;not null;uniqueIndex:idx_recipe_author_text"`
	CookingTime int       `json:"cooking_time" gorm:"not null;check:cooking_time >= 1 AND cooking_time <= 2880"`
	Image       string    `json:"image" gorm:"size:255"`
	PubDate     time.Time `json:"pub_date" gorm:"not null;index;autoCreateTime"`

	Author      *User              `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags        []RecipeTag        `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`

	// Computed per caller by the listing query.
	IsFavorited      bool `json:"is_favorited" gorm:"->;-:migration;column:is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart" gorm:"->;-:migration;column:is_in_shopping_cart"`
}

func (Recipe) TableName() string { return "recipes" }

// BeforeSave keeps TextHash in sync on every write path that goes through GORM.
func (r *Recipe) BeforeSave(*gorm.DB) error {
	r.TextHash = HashRecipeText(r.Text)
	return nil
}

// HashRecipeText returns the hex sha256 of text.
func HashRecipeText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RecipeTag links a recipe to one tag. (recipe, tag) is unique.
type RecipeTag struct {
	ID       int64 `json:"id" gorm:"primaryKey"`
	RecipeID int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_tag"`
	TagID    int64 `json:"tag_id" gorm:"not null;index;uniqueIndex:idx_recipe_tag"`

	Tag *Tag `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (RecipeTag) TableName() string { return "recipe_tags" }

// RecipeIngredient carries the amount of one ingredient in a recipe.
type RecipeIngredient struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	RecipeID     int64 `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64 `json:"ingredient_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	Amount       int   `json:"amount" gorm:"not null;check:amount >= 1"`

	Ingredient *Ingredient `json:"ingredient,omitempty" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
