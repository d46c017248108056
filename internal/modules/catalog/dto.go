package catalog

import "foodgram/internal/domain"

// TagRequest is the body of tag create and update (PUT and PATCH alike).
type TagRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,hexcolor6"`
	Slug  string `json:"slug" validate:"required,max=100,slug"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type IngredientResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func ToTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func ToTagListResponse(tags []domain.Tag) []TagResponse {
	items := make([]TagResponse, len(tags))
	for i := range tags {
		items[i] = ToTagResponse(&tags[i])
	}
	return items
}

func ToIngredientResponse(in *domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: in.ID, Name: in.Name, MeasurementUnit: in.MeasurementUnit}
}

func ToIngredientListResponse(items []domain.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, len(items))
	for i := range items {
		out[i] = ToIngredientResponse(&items[i])
	}
	return out
}
