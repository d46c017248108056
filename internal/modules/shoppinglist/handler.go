package shoppinglist

import (
	"net/http"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const fileName = "shopping_list.txt"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/recipes/download_shopping_cart", h.Download)
}

// Download отдаёт список покупок текстовым файлом.
func (h *Handler) Download(c *gin.Context) {
	items, err := h.service.Build(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(Render(items)))
}
