package user

import (
	"foodgram/internal/domain"
	"foodgram/internal/modules/recipe"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,max=150"`
}

type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,max=150"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

// RegisteredResponse is returned once on sign-up, without the subscription flag.
type RegisteredResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UserResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type SubscriptionResponse struct {
	UserResponse
	Recipes      []recipe.ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                        `json:"recipes_count"`
}

func ToRegisteredResponse(u *domain.User) RegisteredResponse {
	return RegisteredResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

func ToUserListResponse(users []domain.User) []UserResponse {
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return items
}

func ToSubscriptionResponse(s *Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		UserResponse: ToUserResponse(&s.Author),
		Recipes:      recipe.ToShortRecipeList(s.Recipes),
		RecipesCount: s.RecipesCount,
	}
}
