package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"findahand_backend/internal/imageprocessor"
	"findahand_backend/internal/logger"
	"findahand_backend/internal/storage"
	"findahand_backend/pkg/apperrors"
)

// UploadService validates, resizes and stores image uploads, returning the
// public URL the stored image is served from.
type UploadService interface {
	SaveProfileImage(ctx context.Context, file *multipart.FileHeader) (string, error)
	SavePortfolioImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type UploadServiceImpl struct {
	store        storage.Storage
	processor    *imageprocessor.Processor
	maxSize      int64
	allowedTypes []string
}

func NewUploadService(store storage.Storage, processor *imageprocessor.Processor, maxSize int64, allowedTypes []string) UploadService {
	return &UploadServiceImpl{
		store:        store,
		processor:    processor,
		maxSize:      maxSize,
		allowedTypes: allowedTypes,
	}
}

func (s *UploadServiceImpl) SaveProfileImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.save(ctx, file, "profiles", imageprocessor.SizeProfile)
}

func (s *UploadServiceImpl) SavePortfolioImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.save(ctx, file, "portfolio", imageprocessor.SizePortfolio)
}

func (s *UploadServiceImpl) save(ctx context.Context, file *multipart.FileHeader, prefix string, size imageprocessor.ImageSize) (string, error) {
	if file.Size > s.maxSize {
		return "", apperrors.ErrFileTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer f.Close()

	// The declared Content-Type header is untrusted; sniff the actual
	// bytes.
	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "", apperrors.InternalError(err)
	}
	contentType := http.DetectContentType(head[:n])
	if !s.isAllowedType(contentType) {
		return "", apperrors.ErrInvalidFileType
	}
	if _, err := f.Seek(0, 0); err != nil {
		return "", apperrors.InternalError(err)
	}

	processed, format, err := s.processor.Process(f, size)
	if err != nil {
		return "", apperrors.ErrInvalidFileType
	}

	ext := "jpg"
	if format == "png" {
		ext = "png"
	}
	key := path.Join(prefix, fmt.Sprintf("%s.%s", uuid.New().String(), ext))

	if err := s.store.Save(ctx, key, processed, "image/"+format); err != nil {
		return "", apperrors.InternalError(err)
	}
	logger.CtxDebug(ctx, "Image stored", "key", key, "format", format, "original_size", file.Size)

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *UploadServiceImpl) isAllowedType(contentType string) bool {
	for _, allowed := range s.allowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}
