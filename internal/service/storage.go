package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore saves uploaded image files under a directory with generated
// names, so stored filenames are safe to embed in URLs.
type ImageStore struct {
	Dir string
}

// NewImageStore ensures the upload directory exists.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{Dir: dir}, nil
}

// Save writes one uploaded file and returns the stored filename.
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// Path returns the on-disk location for a stored filename, rejecting path
// traversal.
func (s *ImageStore) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid filename")
	}
	return filepath.Join(s.Dir, filename), nil
}

// Remove deletes a stored file, ignoring files that are already gone.
func (s *ImageStore) Remove(filename string) error {
	p, err := s.Path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
