package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/dto"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/service"
)

type FolderHandler struct {
	folderService service.FolderService
	threadService service.ThreadService
}

func NewFolderHandler(folderService service.FolderService, threadService service.ThreadService) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		threadService: threadService,
	}
}

func (h *FolderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	folder, err := h.folderService.Create(ctx, service.CreateFolderParams{
		OrgID:       orgID,
		OwnerUserID: req.OwnerUserID,
		ParentID:    req.ParentID,
		Type:        model.FolderType(req.Type),
		Name:        req.Name,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondError(c, err, "failed to create folder")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFolderResponse(folder))
}

func (h *FolderHandler) List(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	folders, err := h.folderService.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err, "failed to list folders")
		return
	}

	out := make([]dto.FolderResponse, len(folders))
	for i := range folders {
		out[i] = *dto.ToFolderResponse(&folders[i])
	}
	c.JSON(http.StatusOK, gin.H{"folders": out})
}

func (h *FolderHandler) Delete(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	folderID, ok := pathID(c, "folder_id")
	if !ok {
		return
	}

	if err := h.folderService.Delete(c.Request.Context(), orgID, folderID); err != nil {
		respondError(c, err, "failed to delete folder")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FolderHandler) ListThreads(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	folderID, ok := pathID(c, "folder_id")
	if !ok {
		return
	}
	pageSize, cursor := pageParams(c)

	threads, next, err := h.threadService.ListByFolder(c.Request.Context(), orgID, folderID, pageSize, cursor)
	if err != nil {
		respondError(c, err, "failed to list threads")
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadListResponse(threads, next))
}
