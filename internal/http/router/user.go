package router

import (
	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/handler"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.POST("", h.Create)
	rg.GET("/:user_id", h.Get)
	rg.DELETE("/:user_id", h.Delete)
	rg.GET("/:user_id/threads", h.ListThreads)
}
