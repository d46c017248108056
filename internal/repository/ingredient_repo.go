package repository

import (
	"context"
	"strings"

	"foodgram/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// List returns ingredients ordered by name. A non-empty name narrows the
// result to case-insensitive substring matches.
func (r *IngredientRepository) List(ctx context.Context, name string) ([]domain.Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&domain.Ingredient{})
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(name))+"%")
	}
	var items []domain.Ingredient
	err := q.Order("name ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var i domain.Ingredient
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

// Upsert inserts ingredients in batches, skipping existing (name, unit) pairs.
func (r *IngredientRepository) Upsert(ctx context.Context, items []domain.Ingredient, batchSize int) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&items, batchSize)
	return res.RowsAffected, translate(res.Error)
}

func (r *IngredientRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	err := r.db.WithContext(ctx).Model(&domain.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
