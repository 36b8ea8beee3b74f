package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/dto"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Create(ctx, service.CreateMessageParams{
		OrgID:          orgID,
		ThreadID:       threadID,
		SenderType:     model.SenderType(req.SenderType),
		SenderID:       req.SenderID,
		Content:        req.Content,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		respondError(c, err, "failed to create message")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageResponse(msg))
}

func (h *MessageHandler) List(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	threadID, ok := pathID(c, "thread_id")
	if !ok {
		return
	}
	pageSize, cursor := pageParams(c)

	messages, next, err := h.messageService.ListByThread(c.Request.Context(), orgID, threadID, pageSize, cursor)
	if err != nil {
		respondError(c, err, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageListResponse(messages, next))
}
