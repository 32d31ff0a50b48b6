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

type ConversationHandler struct {
	Svc    *application.ConversationService
	Logger *logrus.Logger
}

func NewConversationHandler(svc *application.ConversationService, logger *logrus.Logger) *ConversationHandler {
	return &ConversationHandler{Svc: svc, Logger: logger}
}

type startConversationRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	Content     string `json:"content" binding:"required,min=1,max=2000"`
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

func (h *ConversationHandler) Start(c *gin.Context) {
	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	conv, err := h.Svc.Start(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.RecipientID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "recipient not found", nil)
		case errors.Is(err, application.ErrSelfConversation):
			response.Error[any](c, http.StatusBadRequest, "cannot message yourself", nil)
		default:
			h.Logger.WithError(err).Error("start conversation failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to start conversation", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, conv, "conversation started", nil)
}

func (h *ConversationHandler) List(c *gin.Context) {
	convs, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.Logger.WithError(err).Error("list conversations failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list conversations", nil)
		return
	}
	response.Success(c, http.StatusOK, convs, "conversations", map[string]any{"count": len(convs)})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	detail, err := h.Svc.Get(c.Request.Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to load conversation")
		return
	}
	response.Success(c, http.StatusOK, detail, "conversation", nil)
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	msg, err := h.Svc.SendMessage(c.Request.Context(), middleware.Identity(c), c.Param("id"), req.Content)
	if err != nil {
		h.writeError(c, err, "failed to send message")
		return
	}
	response.Success(c, http.StatusCreated, msg, "message sent", nil)
}

func (h *ConversationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to mark conversation read")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"read": true}, "conversation marked read", nil)
}

func (h *ConversationHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "conversation not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "not a participant", nil)
	default:
		h.Logger.WithError(err).Error(fallback)
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}
