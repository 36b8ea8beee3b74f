package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/dto"
	"tutorstack.app/api/internal/service"
)

type UserHandler struct {
	userService   service.UserService
	threadService service.ThreadService
}

func NewUserHandler(userService service.UserService, threadService service.ThreadService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		threadService: threadService,
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(ctx, req.Name, req.Email, req.PrimaryOrgID)
	if err != nil {
		respondError(c, err, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, err, "failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListThreads(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	pageSize, cursor := pageParams(c)

	threads, next, err := h.threadService.ListByUser(c.Request.Context(), userID, pageSize, cursor)
	if err != nil {
		respondError(c, err, "failed to list threads")
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadListResponse(threads, next))
}
