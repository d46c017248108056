package catalog

import "errors"

var (
	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagExists          = errors.New("tag with this name, color or slug already exists")
	ErrEmptyTagName       = errors.New("tag name is empty")
	ErrTagInUse           = errors.New("tag is attached to recipes")
)
