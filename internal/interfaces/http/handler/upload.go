package handler

import (
	"io"

	"github.com/esquire/backend/internal/infrastructure/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxUploadSize is the largest accepted upload in bytes
const MaxUploadSize = 10 << 20 // 10 MB

// allowedUploadTypes are the content types accepted for uploads
var allowedUploadTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"text/plain":      {},
}

// UploadHandler handles media and document uploads
type UploadHandler struct {
	BaseHandler
	store  storage.ObjectStorage
	logger *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store storage.ObjectStorage, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger,
	}
}

// UploadResponse describes a stored upload
type UploadResponse struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Upload stores a multipart file and returns its URL. The file is attached
// to posts or analyses in a separate request.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file field is required")
		return
	}

	if fileHeader.Size > MaxUploadSize {
		h.PayloadTooLarge(c, "File exceeds the 10 MB upload limit")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := allowedUploadTypes[contentType]; !ok {
		h.UnsupportedMedia(c, "Only PDF, JPEG, PNG, and plain text uploads are accepted")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}
	if int64(len(data)) > MaxUploadSize {
		h.PayloadTooLarge(c, "File exceeds the 10 MB upload limit")
		return
	}

	key := storage.BuildKey("uploads", fileHeader.Filename)
	stored, err := h.store.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		h.logger.Error("Upload failed", zap.String("key", key), zap.Error(err))
		h.InternalError(c, "Failed to store upload")
		return
	}

	h.Created(c, UploadResponse{
		URL:      stored.URL,
		Key:      stored.Key,
		Filename: fileHeader.Filename,
		MimeType: stored.MimeType,
		Size:     stored.Size,
	})
}
