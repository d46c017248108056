// Package app assembles repositories, services and handlers into the HTTP router.
package app

import (
	"fmt"
	"net/http"

	"foodgram/internal/middleware"
	"foodgram/internal/modules/catalog"
	"foodgram/internal/modules/membership"
	"foodgram/internal/modules/recipe"
	"foodgram/internal/modules/shoppinglist"
	"foodgram/internal/modules/user"
	"foodgram/internal/pkg/jwt"
	"foodgram/internal/pkg/response"
	"foodgram/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	JWT         *jwt.Service
	CORSOrigins []string
	AccessLog   bool
}

func NewRouter(d Deps) (*gin.Engine, error) {
	userRepo := repository.NewUserRepository(d.DB)
	followRepo := repository.NewFollowRepository(d.DB)
	tagRepo := repository.NewTagRepository(d.DB)
	ingredientRepo := repository.NewIngredientRepository(d.DB)
	recipeRepo := repository.NewRecipeRepository(d.DB)
	favoriteRepo := repository.NewFavoriteRepository(d.DB)
	cartRepo := repository.NewShoppingCartRepository(d.DB)
	shoppingListRepo, err := repository.NewShoppingListRepositoryFromGorm(d.DB)
	if err != nil {
		return nil, fmt.Errorf("shopping list repository: %w", err)
	}

	userHandler := user.NewHandler(user.NewService(userRepo, followRepo, recipeRepo))
	catalogHandler := catalog.NewHandler(catalog.NewService(tagRepo, ingredientRepo))
	recipeHandler := recipe.NewHandler(recipe.NewService(recipeRepo, tagRepo, ingredientRepo))
	membershipHandler := membership.NewHandler(
		membership.NewService("favorites", favoriteRepo, recipeRepo),
		membership.NewService("shopping cart", cartRepo, recipeRepo),
	)
	shoppingListHandler := shoppinglist.NewHandler(shoppinglist.NewService(shoppingListRepo))
	ownership := middleware.NewOwnershipChecker(recipeRepo)

	r := gin.New()
	r.Use(middleware.RequestID())
	if d.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/health", health(d.DB))

	api := r.Group("/api")
	{
		public := api.Group("")
		optional := api.Group("")
		optional.Use(middleware.OptionalAuth(d.JWT))
		protected := api.Group("")
		protected.Use(middleware.JWTAuth(d.JWT))

		catalogHandler.RegisterRoutes(public, protected)
		userHandler.RegisterRoutes(public, optional, protected)
		recipeHandler.RegisterRoutes(optional, protected, ownership.RecipeAuthor())
		membershipHandler.RegisterRoutes(protected)
		shoppingListHandler.RegisterRoutes(protected)
	}

	return r, nil
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
