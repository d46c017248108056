package user

import (
	"context"

	"foodgram/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id, viewerID int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, viewerID int64) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID int64) (*domain.Follow, error)
	Delete(ctx context.Context, userID, authorID int64) error
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
	ListAuthors(ctx context.Context, userID int64) ([]domain.User, error)
}

// RecipeStats supplies the recipe part of a subscription entry.
type RecipeStats interface {
	ListShortByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
	CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error)
}
