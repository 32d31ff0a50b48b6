package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/application"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/pkg/response"
	"github.com/Ping-Win-Info/insavente/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type rateUserRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

func (h *UserHandler) Profile(c *gin.Context) {
	p, err := h.Svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("load profile failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load profile", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

func (h *UserHandler) Ratings(c *gin.Context) {
	ratings, err := h.Svc.ListRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("list ratings failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list ratings", nil)
		return
	}
	response.Success(c, http.StatusOK, ratings, "ratings", map[string]any{"count": len(ratings)})
}

func (h *UserHandler) Rate(c *gin.Context) {
	var req rateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	r, err := h.Svc.RateUser(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"), req.Score, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrSelfRating):
			response.Error[any](c, http.StatusBadRequest, "cannot rate yourself", nil)
		default:
			h.Logger.WithError(err).Error("rate user failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to rate user", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, r, "rating saved", nil)
}
