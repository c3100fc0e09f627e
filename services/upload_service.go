package services

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"qna-board/models"

	"github.com/google/uuid"
)

// ImageExtensions maps the accepted upload media types to file extensions.
var ImageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/png":  "png",
}

type UploadService interface {
	// CheckImage reports ErrUnsupportedMediaType for anything but jpeg, gif or png.
	CheckImage(file *multipart.FileHeader) (string, error)
	// SaveImage stores the file and returns its public path.
	SaveImage(file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	dir       string
	urlPrefix string
}

func NewUploadService(dir, urlPrefix string) UploadService {
	return &uploadService{dir: dir, urlPrefix: urlPrefix}
}

func (s *uploadService) CheckImage(file *multipart.FileHeader) (string, error) {
	mediaType, _, err := mime.ParseMediaType(file.Header.Get("Content-Type"))
	if err != nil {
		return "", models.ErrUnsupportedMediaType
	}
	ext, ok := ImageExtensions[mediaType]
	if !ok {
		return "", models.ErrUnsupportedMediaType
	}
	return ext, nil
}

func (s *uploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	ext, err := s.CheckImage(file)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("chmod upload: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	filename := uuid.NewString() + "." + ext
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, filename)); err != nil {
		return "", fmt.Errorf("move upload: %w", err)
	}

	return path.Join(s.urlPrefix, filename), nil
}
