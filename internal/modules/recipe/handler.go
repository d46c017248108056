package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the recipe routes. optional carries OptionalAuth,
// protected carries JWTAuth; authorOnly guards writes to an existing recipe.
func (h *Handler) RegisterRoutes(optional, protected *gin.RouterGroup, authorOnly gin.HandlerFunc) {
	optional.GET("/recipes", h.List)
	optional.GET("/recipes/:id", h.Get)

	protected.POST("/recipes", h.Create)
	protected.PUT("/recipes/:id", authorOnly, h.Update)
	protected.PATCH("/recipes/:id", authorOnly, h.Update)
	protected.DELETE("/recipes/:id", authorOnly, h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	f := ListFilter{TagSlugs: c.QueryArray("tags")}

	if raw := c.Query("author"); raw != "" {
		authorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "author must be a user id")
			return
		}
		f.AuthorID = authorID
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a non-negative integer")
			return
		}
		f.Limit = limit
	}
	f.IsFavorited = queryFlag(c, "is_favorited")
	f.IsInShoppingCart = queryFlag(c, "is_in_shopping_cart")

	recipes, err := h.service.List(c.Request.Context(), f, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToRecipeListResponse(recipes))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.service.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToRecipeResponse(recipe))
}

func (h *Handler) Create(c *gin.Context) {
	req, ok := bindRecipe(c)
	if !ok {
		return
	}
	recipe, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req.Candidate())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToRecipeResponse(recipe))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	req, ok := bindRecipe(c)
	if !ok {
		return
	}
	recipe, err := h.service.Update(c.Request.Context(), id, middleware.UserID(c), req.Candidate())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToRecipeResponse(recipe))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindRecipe(c *gin.Context) (*RecipeRequest, bool) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return nil, false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid recipe", errs)
		return nil, false
	}
	return &req, true
}

func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return 0, false
	}
	return id, true
}

// queryFlag accepts the 1/0 form used by the frontend as well as true/false.
func queryFlag(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		code := "VALIDATION_ERROR"
		if errors.Is(err, ErrDuplicateRecipe) {
			code = "DUPLICATE_RECIPE"
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, code, verr.Message,
			map[string]string{verr.Field: verr.Message})
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipe not found")
	case errors.Is(err, ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
