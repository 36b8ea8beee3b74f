package router

import (
	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/handler"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.POST("", h.Create)
	rg.GET("/:org_id", h.Get)
	rg.GET("/:org_id/members", h.ListMembers)
	rg.POST("/:org_id/disable", h.Disable)
	rg.POST("/:org_id/delete", h.SoftDelete)
	rg.DELETE("/:org_id", h.HardDelete)
}
