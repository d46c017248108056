package recipe

import (
	"time"

	"foodgram/internal/domain"
)

type IngredientAmountRequest struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// RecipeRequest — тело POST/PUT/PATCH /recipes. Теги и ингредиенты
// проверяются в Validator, здесь только форма полей.
type RecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=100"`
	Text        string                    `json:"text" validate:"required"`
	Image       string                    `json:"image" validate:"max=255"`
	CookingTime int                       `json:"cooking_time"`
	Tags        []int64                   `json:"tags"`
	Ingredients []IngredientAmountRequest `json:"ingredients"`
}

func (r RecipeRequest) Candidate() Candidate {
	c := Candidate{
		Name:        r.Name,
		Text:        r.Text,
		Image:       r.Image,
		CookingTime: r.CookingTime,
		Tags:        r.Tags,
		Ingredients: make([]IngredientInput, 0, len(r.Ingredients)),
	}
	for _, it := range r.Ingredients {
		c.Ingredients = append(c.Ingredients, IngredientInput{ID: it.ID, Amount: it.Amount})
	}
	return c
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type AuthorResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type IngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               int64                `json:"id"`
	Tags             []TagResponse        `json:"tags"`
	Author           *AuthorResponse      `json:"author"`
	Ingredients      []IngredientResponse `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
	PubDate          time.Time            `json:"pub_date"`
}

// ShortRecipeResponse is the compact form used by favorites, the cart and subscriptions.
type ShortRecipeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func ToRecipeResponse(r *domain.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:               r.ID,
		Tags:             make([]TagResponse, 0, len(r.Tags)),
		Ingredients:      make([]IngredientResponse, 0, len(r.Ingredients)),
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PubDate:          r.PubDate,
	}

	if r.Author != nil {
		resp.Author = &AuthorResponse{
			ID:           r.Author.ID,
			Email:        r.Author.Email,
			Username:     r.Author.Username,
			FirstName:    r.Author.FirstName,
			LastName:     r.Author.LastName,
			IsSubscribed: r.Author.IsSubscribed,
		}
	}
	for _, rt := range r.Tags {
		if rt.Tag == nil {
			continue
		}
		resp.Tags = append(resp.Tags, TagResponse{
			ID:    rt.Tag.ID,
			Name:  rt.Tag.Name,
			Color: rt.Tag.Color,
			Slug:  rt.Tag.Slug,
		})
	}
	for _, ri := range r.Ingredients {
		if ri.Ingredient == nil {
			continue
		}
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			ID:              ri.Ingredient.ID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	return resp
}

func ToRecipeListResponse(recipes []domain.Recipe) []RecipeResponse {
	items := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		items[i] = ToRecipeResponse(&recipes[i])
	}
	return items
}

func ToShortRecipeResponse(r *domain.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

func ToShortRecipeList(recipes []domain.Recipe) []ShortRecipeResponse {
	items := make([]ShortRecipeResponse, len(recipes))
	for i := range recipes {
		items[i] = ToShortRecipeResponse(&recipes[i])
	}
	return items
}
