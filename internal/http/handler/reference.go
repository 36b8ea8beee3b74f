package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/dto"
	"tutorstack.app/api/internal/service"
)

type ReferenceHandler struct {
	refService service.ReferenceService
	attService service.AttachmentService
}

func NewReferenceHandler(refService service.ReferenceService, attService service.AttachmentService) *ReferenceHandler {
	return &ReferenceHandler{
		refService: refService,
		attService: attService,
	}
}

func (h *ReferenceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}

	var req dto.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := h.refService.Create(ctx, service.CreateReferenceParams{
		OrgID:     orgID,
		ThreadID:  threadID,
		MessageID: req.MessageID,
		FileID:    req.FileID,
		URL:       req.URL,
		Title:     req.Title,
	})
	if err != nil {
		respondError(c, err, "failed to create reference")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReferenceResponse(ref))
}

func (h *ReferenceHandler) List(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}

	refs, err := h.refService.ListByThread(c.Request.Context(), orgID, threadID)
	if err != nil {
		respondError(c, err, "failed to list references")
		return
	}

	c.JSON(http.StatusOK, dto.ToReferenceListResponse(refs))
}

func (h *ReferenceHandler) DeleteByThread(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}

	if err := h.refService.DeleteByThread(c.Request.Context(), orgID, threadID); err != nil {
		respondError(c, err, "failed to delete references")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReferenceHandler) CreateAttachment(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	var req dto.CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	att, err := h.attService.Create(ctx, orgID, req.MessageID, req.FileID)
	if err != nil {
		respondError(c, err, "failed to create attachment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(att))
}

func (h *ReferenceHandler) ListAttachments(c *gin.Context) {
	if _, ok := pathID(c, "org_id"); !ok {
		return
	}
	messageID, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	atts, err := h.attService.ListByMessage(c.Request.Context(), messageID)
	if err != nil {
		respondError(c, err, "failed to list attachments")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentListResponse(atts))
}
