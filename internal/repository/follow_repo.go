package repository

import (
	"context"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

// FollowRepository handles persistence for user-to-author subscriptions.
type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create stores the subscription. A self-subscription never reaches the
// database; the follows table also carries a CHECK for it.
func (r *FollowRepository) Create(ctx context.Context, userID, authorID int64) (*domain.Follow, error) {
	if userID == authorID {
		return nil, ErrSelfReference
	}
	f := &domain.Follow{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, translate(err)
	}
	return f, nil
}

func (r *FollowRepository) Delete(ctx context.Context, userID, authorID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// ListAuthors returns the authors userID follows, oldest subscription first.
func (r *FollowRepository) ListAuthors(ctx context.Context, userID int64) ([]domain.User, error) {
	var authors []domain.User
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("users.*, TRUE AS is_subscribed").
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at ASC, follows.id ASC").
		Find(&authors).Error
	return authors, err
}
