package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ibtida01/Shobarkhamar/internal/database/minio"
)

// Storage persists uploaded diagnosis images. Save returns the URL the stored
// file is reachable at.
type Storage interface {
	Save(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (string, error)
	Delete(ctx context.Context, fileName string) error
}

// LocalStorage writes files under a configured directory; they are served
// back at /uploads/<name>.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(_ context.Context, fileName, _ string, reader io.Reader, _ int64) (string, error) {
	// Reject names that could escape the upload directory.
	if fileName == "" || fileName != filepath.Base(fileName) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	path := filepath.Join(s.dir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + fileName, nil
}

func (s *LocalStorage) Delete(_ context.Context, fileName string) error {
	if fileName == "" || fileName != filepath.Base(fileName) {
		return fmt.Errorf("invalid file name %q", fileName)
	}
	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// MinioStorage stores files in an object-storage bucket and returns a URL
// under the configured public resource base.
type MinioStorage struct {
	client      *minio.MinioClient
	resourceURL string
}

func NewMinioStorage(client *minio.MinioClient, resourceURL string) *MinioStorage {
	return &MinioStorage{
		client:      client,
		resourceURL: strings.TrimSuffix(resourceURL, "/"),
	}
}

func (s *MinioStorage) Save(ctx context.Context, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	if err := s.client.UploadFile(ctx, fileName, contentType, reader, size); err != nil {
		return "", fmt.Errorf("failed to upload file to MinIO: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.resourceURL, s.client.Bucket(), fileName), nil
}

func (s *MinioStorage) Delete(ctx context.Context, fileName string) error {
	return s.client.DeleteFile(ctx, fileName)
}
