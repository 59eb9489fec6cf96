package storage

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FileStorage owns the temp workspace for job artifacts.
type FileStorage struct {
	baseDir string
}

// NewFileStorage creates the workspace directory if needed.
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	return &FileStorage{baseDir: baseDir}, nil
}

// SourcePath returns a unique local path for a downloaded source. User
// id, message id and a monotonic token keep concurrent and sequential
// jobs from colliding.
func (s *FileStorage) SourcePath(userID int64, messageID int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("src_%d_%d_%d.mp4", userID, messageID, time.Now().UnixNano()))
}

// NotePath returns the output path for a job's note file.
func (s *FileStorage) NotePath(jobID string) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("note_%s.mp4", jobID))
}

// Download fetches a file from URL to a local path.
func (s *FileStorage) Download(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Exists checks if a file exists.
func (s *FileStorage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Size returns the size of a file.
func (s *FileStorage) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// RemoveIfExists removes a file; a missing file is not an error, since
// failure can occur before an artifact was ever created.
func (s *FileStorage) RemoveIfExists(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Usage returns the total size of the workspace in bytes.
func (s *FileStorage) Usage() (int64, error) {
	var total int64
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
