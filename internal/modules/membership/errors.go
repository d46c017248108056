package membership

import "errors"

var (
	ErrAlreadyExists  = errors.New("recipe is already in the list")
	ErrNotFound       = errors.New("recipe is not in the list")
	ErrRecipeNotFound = errors.New("recipe not found")
)
