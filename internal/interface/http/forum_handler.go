package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/application"
	"github.com/Ping-Win-Info/insavente/internal/authz"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/internal/listing"
	"github.com/Ping-Win-Info/insavente/pkg/response"
	"github.com/Ping-Win-Info/insavente/pkg/validation"
)

type ForumHandler struct {
	Svc    *application.ForumService
	Logger *logrus.Logger
}

func NewForumHandler(svc *application.ForumService, logger *logrus.Logger) *ForumHandler {
	return &ForumHandler{Svc: svc, Logger: logger}
}

type createThreadRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required,min=3,max=200"`
	Content    string `json:"content" binding:"required,min=1"`
}

type createPostRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type moderationRequest struct {
	Value bool `json:"value"`
}

func (h *ForumHandler) Categories(c *gin.Context) {
	cats, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list forum categories failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list categories", nil)
		return
	}
	response.Success(c, http.StatusOK, cats, "forum categories", nil)
}

func (h *ForumHandler) CreateThread(c *gin.Context) {
	var req createThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	thread, err := h.Svc.CreateThread(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateThreadInput{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		Content:    req.Content,
	})
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "category not found", nil)
			return
		}
		h.Logger.WithError(err).Error("create thread failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create thread", nil)
		return
	}
	response.Success(c, http.StatusCreated, thread, "thread created", nil)
}

func (h *ForumHandler) ListThreads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	res, err := h.Svc.ListThreads(c.Request.Context(), application.ThreadListInput{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("search"),
		Page:       page,
		PageSize:   limit,
	})
	if err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			response.Error[any](c, http.StatusBadRequest, verr.Message, gin.H{"code": verr.Code, "field": verr.Field})
			return
		}
		h.Logger.WithError(err).Error("list threads failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list threads", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "threads", nil)
}

func (h *ForumHandler) GetThread(c *gin.Context) {
	detail, err := h.Svc.GetThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "thread not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get thread failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load thread", nil)
		return
	}
	response.Success(c, http.StatusOK, detail, "thread", nil)
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	post, err := h.Svc.CreatePost(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "thread not found", nil)
		case errors.Is(err, application.ErrThreadLocked):
			response.Error[any](c, http.StatusForbidden, "thread is locked", nil)
		default:
			h.Logger.WithError(err).Error("create post failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to create post", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, post, "post created", nil)
}

func (h *ForumHandler) UpdatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	post, err := h.Svc.UpdatePost(c.Request.Context(), middleware.Identity(c), c.Param("id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "post not found", nil)
		case errors.Is(err, application.ErrForbidden):
			response.Error[any](c, http.StatusForbidden, "not allowed", nil)
		case errors.Is(err, application.ErrThreadLocked):
			response.Error[any](c, http.StatusForbidden, "thread is locked", nil)
		default:
			h.Logger.WithError(err).Error("update post failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update post", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, post, "post updated", nil)
}

func (h *ForumHandler) SetLocked(c *gin.Context) {
	h.moderate(c, h.Svc.SetLocked, "thread lock updated")
}

func (h *ForumHandler) SetPinned(c *gin.Context) {
	h.moderate(c, h.Svc.SetPinned, "thread pin updated")
}

func (h *ForumHandler) moderate(c *gin.Context, apply func(ctx context.Context, id *authz.Identity, threadID string, value bool) (*entity.ForumThread, error), message string) {
	var req moderationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	thread, err := apply(c.Request.Context(), middleware.Identity(c), c.Param("id"), req.Value)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrForbidden):
			response.Error[any](c, http.StatusForbidden, "admin only", nil)
		case errors.Is(err, application.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "thread not found", nil)
		default:
			h.Logger.WithError(err).Error("thread moderation failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update thread", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, thread, message, nil)
}
