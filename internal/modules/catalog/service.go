package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	Create(ctx context.Context, t *domain.Tag) error
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id int64) error
}

type IngredientRepository interface {
	List(ctx context.Context, name string) ([]domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
}

type Service struct {
	tags        TagRepository
	ingredients IngredientRepository
}

func NewService(tags TagRepository, ingredients IngredientRepository) *Service {
	return &Service{tags: tags, ingredients: ingredients}
}

/* ---------- TAGS ---------- */

func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	t, err := s.tags.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTagNotFound
	}
	return t, err
}

// CreateTag stores a tag. The name loses its leading/trailing '#' and is
// lower-cased; the color is stored upper-case so "#abcdef" and "#ABCDEF"
// collide on the unique index.
func (s *Service) CreateTag(ctx context.Context, req TagRequest) (*domain.Tag, error) {
	t, err := tagFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

// UpdateTag replaces name, color and slug, normalised as in CreateTag.
func (s *Service) UpdateTag(ctx context.Context, id int64, req TagRequest) (*domain.Tag, error) {
	t, err := tagFromRequest(req)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := s.tags.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTagNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return t, nil
}

// DeleteTag removes a tag. Tags still attached to a recipe are refused.
func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	err := s.tags.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrTagNotFound
	case errors.Is(err, repository.ErrConstraint), errors.Is(err, repository.ErrForeignKey):
		return ErrTagInUse
	}
	return fmt.Errorf("delete tag: %w", err)
}

func tagFromRequest(req TagRequest) (*domain.Tag, error) {
	t := &domain.Tag{
		Name:  NormalizeTagName(req.Name),
		Color: strings.ToUpper(req.Color),
		Slug:  req.Slug,
	}
	if t.Name == "" {
		return nil, ErrEmptyTagName
	}
	return t, nil
}

func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(name), "#")))
}

/* ---------- INGREDIENTS ---------- */

// ListIngredients returns ingredients whose name contains name, ignoring case.
func (s *Service) ListIngredients(ctx context.Context, name string) ([]domain.Ingredient, error) {
	return s.ingredients.List(ctx, strings.TrimSpace(name))
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	in, err := s.ingredients.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrIngredientNotFound
	}
	return in, err
}
