package membership

import (
	"context"
	"errors"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Add(ctx context.Context, userID, recipeID int64) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockStore) Remove(ctx context.Context, userID, recipeID int64) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

type MockRecipes struct {
	mock.Mock
}

func (m *MockRecipes) GetByID(ctx context.Context, id, viewerID int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *MockRecipes) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		recipeErr error
		storeErr  error
		wantErr   error
	}{
		{name: "added"},
		{name: "duplicate", storeErr: repository.ErrDuplicate, wantErr: ErrAlreadyExists},
		{name: "recipe deleted after lookup", storeErr: repository.ErrForeignKey, wantErr: ErrRecipeNotFound},
		{name: "unknown recipe", recipeErr: repository.ErrNotFound, wantErr: ErrRecipeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			recipes := new(MockRecipes)
			svc := NewService("favorites", store, recipes)

			if tt.recipeErr != nil {
				recipes.On("GetByID", ctx, int64(5), int64(1)).Return(nil, tt.recipeErr)
			} else {
				recipes.On("GetByID", ctx, int64(5), int64(1)).Return(&domain.Recipe{ID: 5, Name: "Soup"}, nil)
				store.On("Add", ctx, int64(1), int64(5)).Return(tt.storeErr)
			}

			got, err := svc.Add(ctx, 1, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Soup", got.Name)
			store.AssertExpectations(t)
		})
	}
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	recipes := new(MockRecipes)
	svc := NewService("shopping cart", store, recipes)

	recipes.On("Exists", ctx, int64(5)).Return(true, nil)
	recipes.On("Exists", ctx, int64(6)).Return(false, nil)
	store.On("Remove", ctx, int64(1), int64(5)).Return(nil).Once()
	store.On("Remove", ctx, int64(1), int64(5)).Return(repository.ErrNotFound).Once()

	require.NoError(t, svc.Remove(ctx, 1, 5))
	assert.ErrorIs(t, svc.Remove(ctx, 1, 5), ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, 1, 6), ErrRecipeNotFound)

	storeFailure := errors.New("db down")
	recipes.On("Exists", ctx, int64(7)).Return(true, nil)
	store.On("Remove", ctx, int64(1), int64(7)).Return(storeFailure)
	assert.ErrorIs(t, svc.Remove(ctx, 1, 7), storeFailure)
}
