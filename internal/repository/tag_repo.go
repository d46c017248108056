package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var t domain.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

// Update rewrites name, color and slug of an existing tag.
func (r *TagRepository) Update(ctx context.Context, t *domain.Tag) error {
	res := r.db.WithContext(ctx).Model(&domain.Tag{ID: t.ID}).
		UpdateColumns(map[string]any{"name": t.Name, "color": t.Color, "slug": t.Slug})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a tag no recipe uses. A tag still attached to a recipe is
// kept and ErrConstraint is returned, so no recipe is left without tags.
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND NOT EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.tag_id = tags.id)", id).
		Delete(&domain.Tag{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrConstraint
}

// Upsert inserts tags, leaving rows whose slug already exists untouched.
// Returns the number of inserted rows.
func (r *TagRepository) Upsert(ctx context.Context, tags []domain.Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tags)
	return res.RowsAffected, translate(res.Error)
}

// ExistingIDs returns the subset of ids present in the catalog.
func (r *TagRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	err := r.db.WithContext(ctx).Model(&domain.Tag{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	return found, err
}
