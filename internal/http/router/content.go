package router

import (
	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/handler"
)

// ContentRouter mounts the org-scoped content surface: folders, threads,
// messages, references, attachments, files.
func ContentRouter(
	rg *gin.RouterGroup,
	folders *handler.FolderHandler,
	threads *handler.ThreadHandler,
	messages *handler.MessageHandler,
	refs *handler.ReferenceHandler,
	files *handler.FileHandler,
) {
	rg.POST("/folders", folders.Create)
	rg.GET("/folders", folders.List)
	rg.DELETE("/folders/:folder_id", folders.Delete)
	rg.GET("/folders/:folder_id/threads", folders.ListThreads)

	rg.POST("/threads", threads.Create)
	rg.GET("/threads/:thread_id", threads.Get)
	rg.PATCH("/threads/:thread_id", threads.Update)
	rg.DELETE("/threads/:thread_id", threads.Delete)

	rg.POST("/threads/:thread_id/messages", messages.Create)
	rg.GET("/threads/:thread_id/messages", messages.List)

	rg.POST("/threads/:thread_id/references", refs.Create)
	rg.GET("/threads/:thread_id/references", refs.List)
	rg.DELETE("/threads/:thread_id/references", refs.DeleteByThread)

	rg.POST("/attachments", refs.CreateAttachment)
	rg.GET("/messages/:message_id/attachments", refs.ListAttachments)

	rg.POST("/files", files.Upload)
	rg.GET("/files", files.List)
	rg.GET("/files/:file_id/download", files.Download)
}
