package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"tutorstack.app/api/internal/service"
	"tutorstack.app/api/internal/store"
)

// pathID parses an int64 path parameter, writing a 400 response on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// pageParams reads the standard cursor-pagination query parameters.
func pageParams(c *gin.Context) (pageSize int, cursor string) {
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return pageSize, c.Query("cursor")
}

// respondError maps domain errors to HTTP status codes: missing entities
// to 404, illegal lifecycle transitions and retention violations to 400,
// uniqueness conflicts to 409, everything else to 500 with the fallback
// message (internals stay out of responses).
func respondError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrRetentionNotExpired),
		errors.Is(err, service.ErrReferenceTarget):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
			return
		}
		slog.ErrorContext(ctx, fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
