package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Ping-Win-Info/insavente/internal/interface/http"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me, PUT /api/auth/me, POST /api/auth/change-password

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.Handler.Register)
	auth.POST("/login", m.Handler.Login)

	protected := auth.Group("/")
	protected.Use(middleware.Auth(m.JWT))
	{
		protected.GET("/me", m.Handler.Me)
		protected.PUT("/me", m.Handler.UpdateProfile)
		protected.POST("/change-password", m.Handler.ChangePassword)
	}
}
