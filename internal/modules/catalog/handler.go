package catalog

import (
	"errors"
	"net/http"
	"strconv"

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

/* ---------- TAGS ---------- */

func (h *Handler) GetTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToTagListResponse(tags))
}

func (h *Handler) GetTagByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tag, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToTagResponse(tag))
}

func (h *Handler) CreateTag(c *gin.Context) {
	req, ok := bindTag(c)
	if !ok {
		return
	}
	tag, err := h.service.CreateTag(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToTagResponse(tag))
}

// UpdateTag — PUT/PATCH /tags/:id, полный набор полей
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindTag(c)
	if !ok {
		return
	}
	tag, err := h.service.UpdateTag(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToTagResponse(tag))
}

func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTag(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindTag(c *gin.Context) (TagRequest, bool) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return req, false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tag", errs)
		return req, false
	}
	return req, true
}

/* ---------- INGREDIENTS ---------- */

// GetIngredients — GET /ingredients?name=сах
func (h *Handler) GetIngredients(c *gin.Context) {
	items, err := h.service.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToIngredientListResponse(items))
}

func (h *Handler) GetIngredientByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToIngredientResponse(in))
}

/* ---------- ROUTE REGISTRATION ---------- */

// RegisterRoutes registers all catalog routes. Reads are public, tag
// writes need an authenticated user.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/tags", h.GetTags)
	public.GET("/tags/:id", h.GetTagByID)
	public.GET("/ingredients", h.GetIngredients)
	public.GET("/ingredients/:id", h.GetIngredientByID)

	protected.POST("/tags", h.CreateTag)
	protected.PUT("/tags/:id", h.UpdateTag)
	protected.PATCH("/tags/:id", h.UpdateTag)
	protected.DELETE("/tags/:id", h.DeleteTag)
}

/* ---------- ERROR HANDLING ---------- */

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTagNotFound), errors.Is(err, ErrIngredientNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrTagExists):
		response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, ErrTagInUse):
		response.Error(c, http.StatusBadRequest, "TAG_IN_USE", err.Error())
	case errors.Is(err, ErrEmptyTagName):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(),
			map[string]string{"name": err.Error()})
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
