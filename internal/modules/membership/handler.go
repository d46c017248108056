package membership

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/internal/middleware"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler обрабатывает добавление/удаление рецепта в избранное и в корзину.
type Handler struct {
	favorites *Service
	cart      *Service
}

func NewHandler(favorites, cart *Service) *Handler {
	return &Handler{favorites: favorites, cart: cart}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/recipes/:id/favorite", h.add(h.favorites))
	protected.DELETE("/recipes/:id/favorite", h.remove(h.favorites))
	protected.POST("/recipes/:id/shopping_cart", h.add(h.cart))
	protected.DELETE("/recipes/:id/shopping_cart", h.remove(h.cart))
}

func (h *Handler) add(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, ok := parseRecipeID(c)
		if !ok {
			return
		}

		r, err := svc.Add(c.Request.Context(), middleware.UserID(c), recipeID)
		if err != nil {
			writeError(c, svc, err)
			return
		}
		response.Success(c, http.StatusCreated, recipe.ToShortRecipeResponse(r))
	}
}

func (h *Handler) remove(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, ok := parseRecipeID(c)
		if !ok {
			return
		}

		if err := svc.Remove(c.Request.Context(), middleware.UserID(c), recipeID); err != nil {
			writeError(c, svc, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func parseRecipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, svc *Service, err error) {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", "Recipe is already in "+svc.Kind())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe is not in "+svc.Kind())
	case errors.Is(err, ErrRecipeNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
