package router

import (
	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/handler"
	"tutorstack.app/api/internal/service"
)

// SetupRoutes wires every handler explicitly at startup.
func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		orgHandler := handler.NewOrganizationHandler(services.Organizations(), services.OrgLifecycle())
		OrganizationRouter(v1.Group("/organizations"), orgHandler)

		userHandler := handler.NewUserHandler(services.Users(), services.Threads())
		UserRouter(v1.Group("/users"), userHandler)

		folderHandler := handler.NewFolderHandler(services.Folders(), services.Threads())
		threadHandler := handler.NewThreadHandler(services.Threads())
		messageHandler := handler.NewMessageHandler(services.Messages())
		refHandler := handler.NewReferenceHandler(services.References(), services.Attachments())
		fileHandler := handler.NewFileHandler(services.Files())
		ContentRouter(v1.Group("/organizations/:org_id"), folderHandler, threadHandler, messageHandler, refHandler, fileHandler)
	}
}
