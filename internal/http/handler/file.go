package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorstack.app/api/internal/http/dto"
	"tutorstack.app/api/internal/service"
)

type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload accepts a multipart form with a "file" part and an
// "owner_user_id" field.
func (h *FileHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	var form struct {
		OwnerUserID int64 `form:"owner_user_id" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		slog.WarnContext(ctx, "invalid upload form", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file part"})
		return
	}

	part, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "failed to read upload")
		return
	}
	defer part.Close() //nolint:errcheck

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := h.fileService.Upload(ctx, service.UploadFileParams{
		OrgID:       orgID,
		OwnerUserID: form.OwnerUserID,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Content:     part,
	})
	if err != nil {
		respondError(c, err, "failed to upload file")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFileResponse(file))
}

func (h *FileHandler) List(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	pageSize, cursor := pageParams(c)

	files, next, err := h.fileService.ListByOrg(c.Request.Context(), orgID, pageSize, cursor)
	if err != nil {
		respondError(c, err, "failed to list files")
		return
	}

	c.JSON(http.StatusOK, dto.ToFileListResponse(files, next))
}

// Download redirects to a presigned URL when the blob backend supports
// one, otherwise streams the content directly.
func (h *FileHandler) Download(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "file_id")
	if !ok {
		return
	}

	dl, err := h.fileService.Download(c.Request.Context(), orgID, fileID)
	if err != nil {
		respondError(c, err, "failed to download file")
		return
	}

	if dl.URL != "" {
		c.JSON(http.StatusOK, dto.FileDownloadResponse{URL: dl.URL})
		return
	}

	defer dl.Body.Close() //nolint:errcheck
	c.Header("Content-Disposition", `attachment; filename="`+dl.File.FileName+`"`)
	c.DataFromReader(http.StatusOK, dl.File.SizeBytes, dl.File.ContentType, dl.Body, nil)
}
