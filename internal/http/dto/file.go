package dto

import (
	"time"

	"tutorstack.app/api/internal/model"
)

type FileResponse struct {
	ID          int64     `json:"id,string"`
	OrgID       int64     `json:"org_id,string"`
	OwnerUserID int64     `json:"owner_user_id,string"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Checksum    *string   `json:"checksum_sha256,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToFileResponse(f *model.StoredFile) *FileResponse {
	return &FileResponse{
		ID:          f.ID,
		OrgID:       f.OrgID,
		OwnerUserID: f.OwnerUserID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		Checksum:    f.ChecksumSHA256,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

type FileListResponse struct {
	Files      []FileResponse `json:"files"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

func ToFileListResponse(files []model.StoredFile, nextCursor string) *FileListResponse {
	out := make([]FileResponse, len(files))
	for i := range files {
		out[i] = *ToFileResponse(&files[i])
	}
	return &FileListResponse{Files: out, NextCursor: nextCursor}
}

type FileDownloadResponse struct {
	URL string `json:"url"`
}
