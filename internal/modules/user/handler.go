package user

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

// RegisterRoutes mounts the user routes. Sign-up sits on public so that a
// stale bearer token left in the client does not block it.
func (h *Handler) RegisterRoutes(public, optional, protected *gin.RouterGroup) {
	public.POST("/users", h.Register)
	optional.GET("/users", h.List)
	optional.GET("/users/:id", h.Get)

	protected.GET("/users/me", h.Me)
	protected.POST("/users/set_password", h.SetPassword)
	protected.GET("/users/subscriptions", h.Subscriptions)
	protected.POST("/users/:id/subscribe", h.Subscribe)
	protected.DELETE("/users/:id/subscribe", h.Unsubscribe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data", errs)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToRegisteredResponse(u))
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToUserListResponse(users))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	u, err := h.service.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToUserResponse(u))
}

func (h *Handler) Me(c *gin.Context) {
	me := middleware.UserID(c)
	u, err := h.service.Get(c.Request.Context(), me, me)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToUserResponse(u))
}

func (h *Handler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid password data", errs)
		return
	}

	err := h.service.SetPassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Subscriptions(c *gin.Context) {
	limit, ok := recipesLimit(c)
	if !ok {
		return
	}
	subs, err := h.service.Subscriptions(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		items[i] = ToSubscriptionResponse(&subs[i])
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Subscribe(c *gin.Context) {
	authorID, ok := userID(c)
	if !ok {
		return
	}
	limit, ok := recipesLimit(c)
	if !ok {
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), middleware.UserID(c), authorID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ToSubscriptionResponse(sub))
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, ok := userID(c)
	if !ok {
		return
	}
	if err := h.service.Unsubscribe(c.Request.Context(), middleware.UserID(c), authorID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}

func recipesLimit(c *gin.Context) (int, bool) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "recipes_limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrReservedUsername):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(),
			map[string]string{"username": err.Error()})
	case errors.Is(err, ErrEmailTaken):
		response.ErrorWithDetails(c, http.StatusBadRequest, "ALREADY_EXISTS", err.Error(),
			map[string]string{"email": err.Error()})
	case errors.Is(err, ErrUsernameTaken):
		response.ErrorWithDetails(c, http.StatusBadRequest, "ALREADY_EXISTS", err.Error(),
			map[string]string{"username": err.Error()})
	case errors.Is(err, ErrUserExists):
		response.Error(c, http.StatusBadRequest, "ALREADY_EXISTS", err.Error())
	case errors.Is(err, ErrInvalidPassword):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(),
			map[string]string{"current_password": err.Error()})
	case errors.Is(err, ErrSelfFollow):
		response.Error(c, http.StatusBadRequest, "SELF_FOLLOW", err.Error())
	case errors.Is(err, ErrAlreadyFollowing):
		response.Error(c, http.StatusBadRequest, "ALREADY_FOLLOWING", err.Error())
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotFollowing):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
