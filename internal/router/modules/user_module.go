package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Ping-Win-Info/insavente/internal/interface/http"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

// UserModule wires public profile and rating routes.
// Public: GET /api/users/:id, GET /api/users/:id/ratings
// Protected: POST /api/users/:id/ratings

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("/:id", m.Handler.Profile)
	users.GET("/:id/ratings", m.Handler.Ratings)

	protected := users.Group("/")
	protected.Use(middleware.Auth(m.JWT))
	{
		protected.POST("/:id/ratings", m.Handler.Rate)
	}
}
