package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/config"
	"github.com/google/uuid"
)

var (
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrFileTooLarge       = errors.New("file exceeds the maximum upload size")
)

// Storage persists uploaded files and hands back a stable public URL.
// Delete takes that URL; unknown URLs are ignored.
type Storage interface {
	Save(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Presigner is implemented by backends that let clients upload directly.
type Presigner interface {
	PresignUpload(ctx context.Context, folder, filename, contentType string) (*PresignedURLResponse, error)
}

type PresignedURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

var (
	ImageContentTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}
	DocumentTypes     = []string{"application/pdf"}
)

// New builds the backend selected by cfg.Driver.
func New(cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Storage(cfg.S3), nil
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func ValidateContentType(contentType string, allowed []string) error {
	for _, a := range allowed {
		if strings.EqualFold(contentType, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidContentType, contentType)
}

func ValidateFileSize(size, maxSize int64) error {
	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, maxSize)
	}
	return nil
}

// objectKey is folder/<uuid><ext>. The client filename only contributes its extension.
func objectKey(folder, filename string) string {
	folder = strings.Trim(filepath.ToSlash(filepath.Clean("/"+folder)), "/")
	if folder == "" {
		folder = "uploads"
	}
	return folder + "/" + uuid.New().String() + strings.ToLower(filepath.Ext(filename))
}
