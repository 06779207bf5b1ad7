package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StorageService keeps a content-addressed archive of uploaded documents.
// Files are named by their fingerprint, so re-archiving the same content is a
// no-op rather than a duplicate.
type StorageService interface {
	ArchiveFile(fileHash, filename string, fileBytes []byte) (string, error)
	GetFilePath(fileHash, filename string) string
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// ArchiveFile implements StorageService.
func (s *storageService) ArchiveFile(fileHash, filename string, fileBytes []byte) (string, error) {
	filePath := s.GetFilePath(fileHash, filename)

	if _, err := os.Stat(filePath); err == nil {
		// Same content, same name: already archived.
		return filePath, nil
	}

	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return "", fmt.Errorf("failed to archive file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) GetFilePath(fileHash, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return filepath.Join(s.uploadPath, fileHash+ext)
}
