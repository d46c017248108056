package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"

	"github.com/gin-gonic/gin"
)

// RecipeOwnerLookup returns the author of a recipe or repository.ErrNotFound.
type RecipeOwnerLookup interface {
	GetAuthorID(ctx context.Context, id int64) (int64, error)
}

// OwnershipChecker provides middleware to verify resource ownership
type OwnershipChecker struct {
	recipes RecipeOwnerLookup
}

func NewOwnershipChecker(recipes RecipeOwnerLookup) *OwnershipChecker {
	return &OwnershipChecker{recipes: recipes}
}

// RecipeAuthor lets the request through only for the author of the recipe
// in URL param "id". Must run after JWTAuth.
func (oc *OwnershipChecker) RecipeAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || recipeID <= 0 {
			response.Abort(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
			return
		}

		authorID, err := oc.recipes.GetAuthorID(c.Request.Context(), recipeID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
				return
			}
			log.Printf("ownership_check_failed recipe_id=%d error=%v", recipeID, err)
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}

		if authorID != userID {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Only the author can modify this recipe")
			return
		}

		c.Next()
	}
}
