package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

// MembershipRepository stores (user, recipe) pairs: favorites or the
// shopping cart. Both tables carry a unique index on the pair.
type MembershipRepository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	Exists(ctx context.Context, userID, recipeID int64) (bool, error)
}

type membershipRepository struct {
	db     *gorm.DB
	model  any
	newRow func(userID, recipeID int64) any
}

func NewFavoriteRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{
		db:    db,
		model: &domain.Favorite{},
		newRow: func(userID, recipeID int64) any {
			return &domain.Favorite{UserID: userID, RecipeID: recipeID}
		},
	}
}

func NewShoppingCartRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{
		db:    db,
		model: &domain.ShoppingCartEntry{},
		newRow: func(userID, recipeID int64) any {
			return &domain.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}
		},
	}
}

// Add вставляет пару. Повторная вставка (включая гонку двух одновременных
// запросов, пойманную уникальным индексом) возвращает ErrDuplicate.
func (r *membershipRepository) Add(ctx context.Context, userID, recipeID int64) error {
	exists, err := r.Exists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}
	return translate(r.db.WithContext(ctx).Create(r.newRow(userID, recipeID)).Error)
}

// Remove удаляет пару; ErrNotFound, если её не было.
func (r *membershipRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(r.model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *membershipRepository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(r.model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}
