package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Ping-Win-Info/insavente/internal/interface/http"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

// ForumModule wires the forum routes.
// Public: GET /api/forum/categories, GET /api/forum/threads,
// GET /api/forum/threads/:id
// Protected: POST /api/forum/threads, POST /api/forum/threads/:id/posts,
// PUT /api/forum/posts/:id (owner-or-admin)
// Admin: PUT /api/forum/threads/:id/lock, PUT /api/forum/threads/:id/pin

type ForumModule struct {
	Handler *handlers.ForumHandler
	JWT     *helpers.JWTManager
}

func NewForumModule(h *handlers.ForumHandler, jwt *helpers.JWTManager) *ForumModule {
	return &ForumModule{Handler: h, JWT: jwt}
}

func (m *ForumModule) Register(rg *gin.RouterGroup) {
	forum := rg.Group("/forum")
	forum.GET("/categories", m.Handler.Categories)
	forum.GET("/threads", m.Handler.ListThreads)
	forum.GET("/threads/:id", m.Handler.GetThread)

	protected := forum.Group("/")
	protected.Use(middleware.Auth(m.JWT))
	{
		protected.POST("/threads", m.Handler.CreateThread)
		protected.POST("/threads/:id/posts", m.Handler.CreatePost)
		protected.PUT("/posts/:id", m.Handler.UpdatePost)
		protected.PUT("/threads/:id/lock", m.Handler.SetLocked)
		protected.PUT("/threads/:id/pin", m.Handler.SetPinned)
	}
}
