package storage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrFileTooLarge is returned when an upload exceeds the configured limit.
var ErrFileTooLarge = errors.New("file exceeds upload size limit")

// ErrUnsupportedFile is returned for disallowed file extensions or
// content types.
var ErrUnsupportedFile = errors.New("unsupported file type")

// LocalStore saves uploads on the local filesystem under a single root
// directory. Stored paths are always relative to the root so the root can
// move between environments.
type LocalStore struct {
	root       string
	maxSize    int64
	extensions map[string]struct{}
	mimeTypes  map[string]struct{}
}

// NewLocalStore creates a store rooted at dir.
func NewLocalStore(dir string, maxSize int64, allowedExtensions, allowedTypes []string) *LocalStore {
	extensions := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = struct{}{}
	}
	mimeTypes := make(map[string]struct{}, len(allowedTypes))
	for _, mimeType := range allowedTypes {
		mimeType = strings.ToLower(strings.TrimSpace(mimeType))
		if mimeType == "" {
			continue
		}
		mimeTypes[mimeType] = struct{}{}
	}
	return &LocalStore{root: dir, maxSize: maxSize, extensions: extensions, mimeTypes: mimeTypes}
}

// Root returns the upload root directory.
func (s *LocalStore) Root() string {
	return s.root
}

// DealDir returns the relative directory that holds a deal's files.
func DealDir(dealID uint) string {
	return fmt.Sprintf("deal_%d", dealID)
}

// PaymentDir returns the relative directory that holds a payment's proofs.
func PaymentDir(dealID, paymentID uint) string {
	return filepath.Join(DealDir(dealID), fmt.Sprintf("payment_%d", paymentID))
}

// Save writes data under dir using a random name that keeps the original
// extension, and returns the stored path relative to the root.
func (s *LocalStore) Save(dir, originalName string, data []byte) (string, error) {
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(s.extensions) > 0 {
		if _, ok := s.extensions[ext]; !ok {
			return "", ErrUnsupportedFile
		}
	}
	if len(s.mimeTypes) > 0 {
		mimeType, _, _ := strings.Cut(http.DetectContentType(data), ";")
		if _, ok := s.mimeTypes[strings.TrimSpace(mimeType)]; !ok {
			return "", ErrUnsupportedFile
		}
	}

	relPath := filepath.Join(dir, uuid.NewString()+ext)
	absPath := filepath.Join(s.root, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", err
	}
	return relPath, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *LocalStore) Remove(relPath string) error {
	absPath, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveDir deletes a stored directory tree.
func (s *LocalStore) RemoveDir(relDir string) error {
	absPath, err := s.resolve(relDir)
	if err != nil {
		return err
	}
	return os.RemoveAll(absPath)
}

// Open returns the absolute path of a stored file for serving.
func (s *LocalStore) Open(relPath string) (string, error) {
	absPath, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// resolve rejects paths that escape the upload root.
func (s *LocalStore) resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(relPath)
	if cleaned == "." || cleaned == string(filepath.Separator) ||
		strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid stored path %q", relPath)
	}
	return filepath.Join(s.root, cleaned), nil
}
