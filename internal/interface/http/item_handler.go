package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ping-Win-Info/insavente/internal/application"
	"github.com/Ping-Win-Info/insavente/internal/domain/entity"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/internal/listing"
	"github.com/Ping-Win-Info/insavente/pkg/response"
	"github.com/Ping-Win-Info/insavente/pkg/validation"
)

type ItemHandler struct {
	Svc    *application.ItemService
	Logger *logrus.Logger
}

func NewItemHandler(svc *application.ItemService, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{Svc: svc, Logger: logger}
}

type createItemRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=200"`
	Description string   `json:"description" binding:"required,min=10"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required,oneof=electronics clothing home sports leisure other"`
	Location    string   `json:"location" binding:"omitempty,max=120"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
}

type updateItemRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string  `json:"description" binding:"omitempty,min=10"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Category    *string  `json:"category" binding:"omitempty,oneof=electronics clothing home sports leisure other"`
	Location    *string  `json:"location" binding:"omitempty,max=120"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
	IsActive    *bool    `json:"is_active"`
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	it, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
	})
	if err != nil {
		h.writeItemError(c, err, "failed to create item")
		return
	}
	response.Success(c, http.StatusCreated, it, "item created", nil)
}

func (h *ItemHandler) Get(c *gin.Context) {
	it, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "item not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get item failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load item", nil)
		return
	}
	response.Success(c, http.StatusOK, it, "item", nil)
}

// List is the public listing endpoint. Invalid parameters are rejected with
// a machine-readable code rather than silently corrected.
func (h *ItemHandler) List(c *gin.Context) {
	var raw listing.RawParams
	if err := c.ShouldBindQuery(&raw); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query parameters", validation.ToDetails(err))
		return
	}

	page, err := h.Svc.List(c.Request.Context(), raw)
	if err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			response.Error[any](c, http.StatusBadRequest, verr.Message, gin.H{"code": verr.Code, "field": verr.Field})
			return
		}
		h.Logger.WithError(err).Error("list items failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list items", nil)
		return
	}
	response.Success(c, http.StatusOK, page, "items", nil)
}

func (h *ItemHandler) Update(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	it, err := h.Svc.Update(c.Request.Context(), middleware.Identity(c), c.Param("id"), application.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeItemError(c, err, "failed to update item")
		return
	}
	response.Success(c, http.StatusOK, it, "item updated", nil)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		h.writeItemError(c, err, "failed to delete item")
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "item deleted", nil)
}

func (h *ItemHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read image file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	it, err := h.Svc.UploadImage(c.Request.Context(), middleware.Identity(c), c.Param("id"), f, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.writeItemError(c, err, "failed to upload image")
		return
	}
	response.Success(c, http.StatusOK, it, "image uploaded", nil)
}

func (h *ItemHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size := 10
	if v, err := strconv.Atoi(c.DefaultQuery("size", "")); err == nil && v > 0 {
		size = v
	}

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("item search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *ItemHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, entity.Categories, "categories", nil)
}

func (h *ItemHandler) writeItemError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "item not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "not allowed", nil)
	case errors.Is(err, application.ErrBadCategory):
		response.Error[any](c, http.StatusBadRequest, "unknown category", nil)
	default:
		h.Logger.WithError(err).Error(fallback)
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}
