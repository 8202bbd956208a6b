package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"clubcms/internal/domain"
)

// PublicPrefix is the URL prefix under which uploaded files are served.
const PublicPrefix = "/uploads/"

type diskStore struct {
	dir string
}

// NewDiskStore returns a FileStore writing to dir. The directory is created
// if it does not exist.
func NewDiskStore(dir string) (domain.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

// Save writes src to a uniquely named file and returns its public path
// ("/uploads/<uuid><ext>"). The original name contributes only the extension.
func (s *diskStore) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return PublicPrefix + name, nil
}

// Remove deletes the file backing a public path. Paths outside the uploads
// prefix are rejected.
func (s *diskStore) Remove(publicPath string) error {
	name, ok := strings.CutPrefix(publicPath, PublicPrefix)
	if !ok || name == "" {
		return fmt.Errorf("not an upload path: %s", publicPath)
	}
	name = filepath.Base(name)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to remove upload file: %w", err)
	}
	return nil
}
