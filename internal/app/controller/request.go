package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	apperrors "github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/errors"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/storage"
	"github.com/gin-gonic/gin"
)

func init() {
	apperrors.Register(storage.ErrInvalidContentType, apperrors.KindValidation, apperrors.UploadInvalidFileType, "")
	apperrors.Register(storage.ErrFileTooLarge, apperrors.KindValidation, apperrors.UploadFileTooLarge, "")
}

// currentActor builds the caller from the authenticated context and answers
// 401 when there is none.
func currentActor(c *gin.Context) (service.Actor, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return service.Actor{}, false
	}
	role, _ := middleware.GetUserRole(c)
	name, _ := middleware.GetUserName(c)
	return service.Actor{ID: id, Role: role, Name: name}, true
}

// optionalActor is nil for guests.
func optionalActor(c *gin.Context) *service.Actor {
	id, ok := middleware.GetUserID(c)
	if !ok {
		return nil
	}
	role, _ := middleware.GetUserRole(c)
	name, _ := middleware.GetUserName(c)
	return &service.Actor{ID: id, Role: role, Name: name}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid ID parameter", map[string]interface{}{
			"param": name,
			"value": raw,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// ownerRequest carries the restaurant a state change targets. A missing
// restaurantId means the caller's own restaurant.
type ownerRequest struct {
	RestaurantID uint `json:"restaurantId" form:"restaurantId"`
}

func bindOwner(c *gin.Context, actor service.Actor) uint {
	var req ownerRequest
	if c.Request.ContentLength != 0 {
		// the body is optional on state changes
		_ = c.ShouldBind(&req)
	}
	if req.RestaurantID == 0 {
		return actor.ID
	}
	return req.RestaurantID
}

// Uploader stores multipart files for the controllers that accept photos or documents.
type Uploader struct {
	store   storage.Storage
	maxSize int64
}

func NewUploader(store storage.Storage, maxSize int64) *Uploader {
	return &Uploader{store: store, maxSize: maxSize}
}

// Save stores the file sent as field. It returns "" when the request carries no such file.
func (u *Uploader) Save(c *gin.Context, field, folder string, allowed []string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	contentType := fh.Header.Get("Content-Type")
	if err := storage.ValidateContentType(contentType, allowed); err != nil {
		return "", err
	}
	if err := storage.ValidateFileSize(fh.Size, u.maxSize); err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return u.store.Save(c.Request.Context(), folder, fh.Filename, contentType, f)
}

// Discard removes a stored file. Failures are logged only: the request outcome
// is already decided when this runs.
func (u *Uploader) Discard(c *gin.Context, url string) {
	if url == "" {
		return
	}
	if err := u.store.Delete(c.Request.Context(), url); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to delete stored file", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}
}

// savePhoto answers the request itself when the upload fails.
func (u *Uploader) savePhoto(c *gin.Context, folder string) (string, bool) {
	url, err := u.Save(c, "photo", folder, storage.ImageContentTypes)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Photo upload rejected", map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, storage.ErrInvalidContentType) || errors.Is(err, storage.ErrFileTooLarge) {
			apperrors.RespondWithServiceError(c, err, "upload photo")
		} else {
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to upload file")
		}
		return "", false
	}
	return url, true
}
