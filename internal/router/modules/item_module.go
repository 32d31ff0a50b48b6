package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Ping-Win-Info/insavente/internal/interface/http"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

// ItemModule wires the item routes.
// Public: GET /api/items, GET /api/items/categories, GET /api/items/search,
// GET /api/items/:id
// Protected: POST /api/items, PUT/DELETE /api/items/:id,
// POST /api/items/:id/images

type ItemModule struct {
	Handler *handlers.ItemHandler
	JWT     *helpers.JWTManager
}

func NewItemModule(h *handlers.ItemHandler, jwt *helpers.JWTManager) *ItemModule {
	return &ItemModule{Handler: h, JWT: jwt}
}

func (m *ItemModule) Register(rg *gin.RouterGroup) {
	items := rg.Group("/items")

	// Read paths accept but ignore an identity; a bad token still 401s.
	optional := middleware.OptionalAuth(m.JWT)
	items.GET("", optional, m.Handler.List)
	items.GET("/categories", optional, m.Handler.Categories)
	items.GET("/search", optional, m.Handler.Search)
	items.GET("/:id", optional, m.Handler.Get)

	items.POST("", middleware.Auth(m.JWT), m.Handler.Create)

	protected := items.Group("/")
	protected.Use(middleware.Auth(m.JWT))
	{
		protected.PUT("/:id", m.Handler.Update)
		protected.DELETE("/:id", m.Handler.Delete)
		protected.POST("/:id/images", m.Handler.UploadImage)
	}
}
