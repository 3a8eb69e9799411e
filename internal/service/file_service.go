package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/philipeduarte001/licitacao/internal/config"
	"github.com/philipeduarte001/licitacao/internal/domain"
	"github.com/philipeduarte001/licitacao/internal/port"
)

// FileUploadInput is the DTO for file upload requests.
type FileUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// FileUploadResult describes a stored document.
type FileUploadResult struct {
	Key      string `json:"key"`
	Bucket   string `json:"bucket"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Location string `json:"location,omitempty"`
}

// FileService defines the document storage contract.
type FileService interface {
	Upload(ctx context.Context, input FileUploadInput) (*FileUploadResult, error)
}

type fileService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(storage port.ObjectStorage, cfg *config.S3Config) FileService {
	return &fileService{storage: storage, cfg: cfg}
}

func (s *fileService) Upload(ctx context.Context, input FileUploadInput) (*FileUploadResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte detection guards against mislabeled uploads.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	key := fmt.Sprintf("editals/%s/%s", uuid.New(), input.Header.Filename)

	log.Printf("fileService.Upload: uploading %s (%d bytes) to %s/%s",
		input.Header.Filename, input.Header.Size, s.cfg.Bucket, key)

	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: "application/pdf",
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("fileService.Upload: upload failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	return &FileUploadResult{
		Key:      key,
		Bucket:   s.cfg.Bucket,
		Name:     input.Header.Filename,
		Size:     input.Header.Size,
		Location: out.Location,
	}, nil
}
