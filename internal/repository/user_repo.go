package repository

import (
	"context"
	"strings"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

const subscribedExpr = "EXISTS (SELECT 1 FROM follows f WHERE f.author_id = users.id AND f.user_id = ?) AS is_subscribed"

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// withSubscribed selects users with the is_subscribed flag relative to viewerID.
// Anonymous viewers (0) get plain rows and the flag stays false.
func withSubscribed(db *gorm.DB, viewerID int64) *gorm.DB {
	if viewerID == 0 {
		return db
	}
	return db.Select("users.*, "+subscribedExpr, viewerID)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id, viewerID int64) (*domain.User, error) {
	var u domain.User
	tx := withSubscribed(r.db.WithContext(ctx).Model(&domain.User{}), viewerID).
		Where("users.id = ?", id).
		First(&u)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return &u, nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// List returns all users ordered by id with is_subscribed for viewerID.
func (r *UserRepository) List(ctx context.Context, viewerID int64) ([]domain.User, error) {
	var users []domain.User
	err := withSubscribed(r.db.WithContext(ctx).Model(&domain.User{}), viewerID).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}
