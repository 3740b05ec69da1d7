package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded images and generated audio artifacts on local
// disk. Every artifact gets a random name so stores never overwrite. There is
// no retention policy: artifacts accumulate until purged externally.
type FileStore struct {
	uploadDir string
	audioDir  string
}

// NewFileStore creates the storage directories if they do not exist.
func NewFileStore(uploadDir, audioDir string) (*FileStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio dir: %w", err)
	}
	return &FileStore{uploadDir: uploadDir, audioDir: audioDir}, nil
}

// SaveUpload writes data under a unique name derived from a random identifier
// plus the original filename, and returns the stored path.
func (s *FileStore) SaveUpload(data []byte, originalName string) (string, error) {
	name := fmt.Sprintf("%s_%s", randomHex(), sanitizeName(originalName))
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path, nil
}

// ReadAudio returns the bytes of a generated audio artifact by name.
// Unknown names, and names that try to escape the audio directory, yield
// ErrAudioNotFound.
func (s *FileStore) ReadAudio(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, ErrAudioNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.audioDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrAudioNotFound
		}
		return nil, fmt.Errorf("failed to read audio %q: %w", name, err)
	}
	return data, nil
}

// AudioDir returns the directory generated audio is written to.
func (s *FileStore) AudioDir() string {
	return s.audioDir
}

// randomHex returns a collision-resistant 32-character identifier.
func randomHex() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// sanitizeName strips any path components from a client-supplied filename.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload"
	}
	return name
}
