package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/infrastructure/storage"
)

// UploadResult is returned to the authoring UI: the public URL for
// display and the storage path for later cleanup.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// UploadService stores photos in object storage.
type UploadService interface {
	UploadPhoto(ctx context.Context, filename, pathPrefix, contentType string, reader io.Reader, size int64) (*UploadResult, error)
}

type uploadService struct {
	storage storage.PhotoStorage
}

func NewUploadService(s storage.PhotoStorage) UploadService {
	return &uploadService{storage: s}
}

// UploadPhoto writes the file under pathPrefix with a generated name,
// keeping the original extension. The client-provided content type is
// trusted; missing types fall back to octet-stream in the storage layer.
func (s *uploadService) UploadPhoto(ctx context.Context, filename, pathPrefix, contentType string, reader io.Reader, size int64) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	prefix := strings.Trim(pathPrefix, "/")
	if prefix == "" {
		prefix = "photos"
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	log.Info().Str("key", key).Int64("size", size).Msg("Uploaded photo")
	return &UploadResult{URL: url, Path: key}, nil
}
