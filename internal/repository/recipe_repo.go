package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	favoritedExpr      = "EXISTS (SELECT 1 FROM favorites fav WHERE fav.recipe_id = recipes.id AND fav.user_id = ?) AS is_favorited"
	inShoppingCartExpr = "EXISTS (SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?) AS is_in_shopping_cart"
)

// RecipeFilter narrows recipe listings. Zero value lists everything.
type RecipeFilter struct {
	TagSlugs         []string
	AuthorID         int64
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
}

// IngredientAmount is one (ingredient, amount) row to attach to a recipe.
type IngredientAmount struct {
	IngredientID int64
	Amount       int
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts the recipe and its tag and ingredient rows in one transaction.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, items []IngredientAmount) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, recipe.ID, tagIDs, items)
	})
	return translate(err)
}

// Update rewrites the editable fields of recipe and replaces its tag and
// ingredient sets. AuthorID and PubDate are never written.
func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe, tagIDs []int64, items []IngredientAmount) error {
	recipe.TextHash = domain.HashRecipeText(recipe.Text)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Recipe{ID: recipe.ID}).
			UpdateColumns(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"text_hash":    recipe.TextHash,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&domain.RecipeTag{}).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, recipe.ID, tagIDs, items)
	})
	return translate(err)
}

func replaceAssociations(tx *gorm.DB, recipeID int64, tagIDs []int64, items []IngredientAmount) error {
	if len(items) > 0 {
		rows := make([]domain.RecipeIngredient, 0, len(items))
		for _, it := range items {
			rows = append(rows, domain.RecipeIngredient{
				RecipeID:     recipeID,
				IngredientID: it.IngredientID,
				Amount:       it.Amount,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(tagIDs) > 0 {
		rows := make([]domain.RecipeTag, 0, len(tagIDs))
		for _, id := range tagIDs {
			rows = append(rows, domain.RecipeTag{RecipeID: recipeID, TagID: id})
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the recipe together with every row that references it.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&domain.Favorite{},
			&domain.ShoppingCartEntry{},
			&domain.RecipeTag{},
			&domain.RecipeIngredient{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translate(err)
}

// GetByID loads a recipe with author, tags and ingredients, and the
// per-viewer flags.
func (r *RecipeRepository) GetByID(ctx context.Context, id, viewerID int64) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := r.detailed(ctx, viewerID).
		Where("recipes.id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// List returns recipes newest first.
func (r *RecipeRepository) List(ctx context.Context, f RecipeFilter, viewerID int64) ([]domain.Recipe, error) {
	q := r.detailed(ctx, viewerID)

	if len(f.TagSlugs) > 0 {
		q = q.Where(
			"recipes.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE t.slug IN ?)",
			f.TagSlugs,
		)
	}
	if f.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	// Membership filters only apply to authenticated viewers.
	if viewerID != 0 && f.IsFavorited {
		q = q.Where("EXISTS (SELECT 1 FROM favorites fav WHERE fav.recipe_id = recipes.id AND fav.user_id = ?)", viewerID)
	}
	if viewerID != 0 && f.IsInShoppingCart {
		q = q.Where("EXISTS (SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?)", viewerID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var recipes []domain.Recipe
	err := q.Order("recipes.pub_date DESC, recipes.id DESC").Find(&recipes).Error
	return recipes, err
}

func (r *RecipeRepository) detailed(ctx context.Context, viewerID int64) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{})
	if viewerID != 0 {
		q = q.Select("recipes.*, "+favoritedExpr+", "+inShoppingCartExpr, viewerID, viewerID)
	}
	return q.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return withSubscribed(db, viewerID)
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_tags.id ASC")
		}).
		Preload("Tags.Tag").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id ASC")
		}).
		Preload("Ingredients.Ingredient")
}

// ExistsByAuthorText reports whether authorID already owns a recipe with
// exactly this text. excludeID skips the recipe being edited.
func (r *RecipeRepository) ExistsByAuthorText(ctx context.Context, authorID int64, text string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Where("author_id = ? AND text_hash = ? AND text = ?", authorID, domain.HashRecipeText(text), text)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// GetAuthorID returns the owner of the recipe, for write authorization.
func (r *RecipeRepository) GetAuthorID(ctx context.Context, id int64) (int64, error) {
	var recipe domain.Recipe
	err := r.db.WithContext(ctx).Select("id", "author_id").First(&recipe, id).Error
	if err != nil {
		return 0, translate(err)
	}
	return recipe.AuthorID, nil
}

func (r *RecipeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListShortByAuthor returns up to limit recipes of the author without
// associations; limit <= 0 means all.
func (r *RecipeRepository) ListShortByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recipes []domain.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}

// CountByAuthors returns the number of recipes per author id.
func (r *RecipeRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID int64
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AuthorID] = row.Total
	}
	return out, nil
}
