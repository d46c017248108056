package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	Author       domain.User
	Recipes      []domain.Recipe
	RecipesCount int64
}

type Service struct {
	users   UserRepository
	follows FollowRepository
	recipes RecipeStats
}

func NewService(users UserRepository, follows FollowRepository, recipes RecipeStats) *Service {
	return &Service{users: users, follows: follows, recipes: recipes}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if domain.IsReservedUsername(req.Username) {
		return nil, ErrReservedUsername
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}
	taken, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id, viewerID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, viewerID int64) ([]domain.User, error) {
	return s.users.List(ctx, viewerID)
}

func (s *Service) SetPassword(ctx context.Context, userID int64, current, next string) error {
	u, err := s.Get(ctx, userID, 0)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// Subscribe makes userID follow authorID and returns the author entry as
// it appears in the subscriptions list.
func (s *Service) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*Subscription, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}
	if _, err := s.Get(ctx, authorID, userID); err != nil {
		return nil, err
	}

	exists, err := s.follows.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, fmt.Errorf("check subscription: %w", err)
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	if _, err := s.follows.Create(ctx, userID, authorID); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrAlreadyFollowing
		case errors.Is(err, repository.ErrSelfReference), errors.Is(err, repository.ErrConstraint):
			return nil, ErrSelfFollow
		case errors.Is(err, repository.ErrForeignKey):
			// author deleted after the lookup
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	author, err := s.Get(ctx, authorID, userID)
	if err != nil {
		return nil, err
	}
	subs, err := s.withRecipes(ctx, []domain.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &subs[0], nil
}

func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.Get(ctx, authorID, 0); err != nil {
		return err
	}
	if err := s.follows.Delete(ctx, userID, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowing
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// Subscriptions lists the authors userID follows. recipesLimit <= 0 keeps
// every recipe in the preview.
func (s *Service) Subscriptions(ctx context.Context, userID int64, recipesLimit int) ([]Subscription, error) {
	authors, err := s.follows.ListAuthors(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return s.withRecipes(ctx, authors, recipesLimit)
}

func (s *Service) withRecipes(ctx context.Context, authors []domain.User, recipesLimit int) ([]Subscription, error) {
	ids := make([]int64, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.recipes.CountByAuthors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	out := make([]Subscription, 0, len(authors))
	for _, a := range authors {
		recipes, err := s.recipes.ListShortByAuthor(ctx, a.ID, recipesLimit)
		if err != nil {
			return nil, fmt.Errorf("list recipes of %d: %w", a.ID, err)
		}
		out = append(out, Subscription{Author: a, Recipes: recipes, RecipesCount: counts[a.ID]})
	}
	return out, nil
}
