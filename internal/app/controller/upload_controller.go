package controller

import (
	"net/http"

	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/storage"
	"github.com/gin-gonic/gin"
)

// UploadController hands out presigned URLs so clients can push large photos
// straight to the bucket. Only S3 storage supports it.
type UploadController struct {
	presigner storage.Presigner
}

func NewUploadController(store storage.Storage) *UploadController {
	presigner, _ := store.(storage.Presigner)
	return &UploadController{presigner: presigner}
}

type GeneratePresignedURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// GeneratePresignedURL generates a presigned URL for an image upload
// POST /api/upload/presigned-url
func (ctrl *UploadController) GeneratePresignedURL(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if ctrl.presigner == nil {
		apperrors.RespondWithError(c, http.StatusNotImplemented, apperrors.UploadFailed, "Direct uploads are not available")
		return
	}

	var req GeneratePresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, err)
		return
	}

	if err := storage.ValidateContentType(req.ContentType, storage.ImageContentTypes); err != nil {
		apperrors.RespondWithServiceError(c, err, "generate upload url")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = "uploads"
	}

	response, err := ctrl.presigner.PresignUpload(c.Request.Context(), folder, req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename": req.Filename,
			"folder":   folder,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to generate presigned URL")
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"folder": folder,
		"key":    response.Key,
	})

	apperrors.RespondOK(c, http.StatusOK, "Presigned URL generated", gin.H{
		"upload_url": response.UploadURL,
		"file_url":   response.FileURL,
		"key":        response.Key,
	})
}
