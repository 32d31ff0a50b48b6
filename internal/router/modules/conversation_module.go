package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/Ping-Win-Info/insavente/internal/interface/http"
	"github.com/Ping-Win-Info/insavente/internal/interface/middleware"
	"github.com/Ping-Win-Info/insavente/pkg/helpers"
)

// ConversationModule wires the private messaging routes, all protected.

type ConversationModule struct {
	Handler *handlers.ConversationHandler
	JWT     *helpers.JWTManager
}

func NewConversationModule(h *handlers.ConversationHandler, jwt *helpers.JWTManager) *ConversationModule {
	return &ConversationModule{Handler: h, JWT: jwt}
}

func (m *ConversationModule) Register(rg *gin.RouterGroup) {
	convs := rg.Group("/conversations")
	convs.Use(middleware.Auth(m.JWT))
	{
		convs.POST("", m.Handler.Start)
		convs.GET("", m.Handler.List)
		convs.GET("/:id", m.Handler.Get)
		convs.POST("/:id/messages", m.Handler.SendMessage)
		convs.PUT("/:id/read", m.Handler.MarkRead)
	}
}
