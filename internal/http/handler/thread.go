package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/dto"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/service"
)

type ThreadHandler struct {
	threadService service.ThreadService
}

func NewThreadHandler(threadService service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

func (h *ThreadHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	var req dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := h.threadService.Create(ctx, service.CreateThreadParams{
		OrgID:     orgID,
		UserID:    req.UserID,
		FolderID:  req.FolderID,
		Title:     req.Title,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondError(c, err, "failed to create thread")
		return
	}

	c.JSON(http.StatusCreated, dto.ToThreadResponse(thread))
}

func (h *ThreadHandler) Get(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}

	thread, err := h.threadService.Get(c.Request.Context(), orgID, threadID)
	if err != nil {
		respondError(c, err, "failed to load thread")
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadResponse(thread))
}

func (h *ThreadHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}

	var req dto.UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.UpdateThreadParams{
		FolderID:  req.FolderID,
		Title:     req.Title,
		SortOrder: req.SortOrder,
	}
	if req.Status != nil {
		status := model.ThreadStatus(*req.Status)
		params.Status = &status
	}

	thread, err := h.threadService.Update(ctx, orgID, threadID, params)
	if err != nil {
		respondError(c, err, "failed to update thread")
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadResponse(thread))
}

func (h *ThreadHandler) Delete(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}

	if err := h.threadService.Delete(c.Request.Context(), orgID, threadID); err != nil {
		respondError(c, err, "failed to delete thread")
		return
	}

	c.Status(http.StatusNoContent)
}
