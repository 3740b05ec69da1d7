package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	base := t.TempDir()
	store, err := NewFileStore(filepath.Join(base, "uploads"), filepath.Join(base, "audio"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return store
}

func TestSaveUploadNeverOverwrites(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	first, err := store.SaveUpload([]byte("one"), "photo.png")
	if err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	second, err := store.SaveUpload([]byte("two"), "photo.png")
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct paths for repeated saves of the same filename")
	}
	if !strings.HasSuffix(first, "_photo.png") {
		t.Fatalf("expected stored name to keep the original filename, got %q", first)
	}

	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "one" {
		t.Fatalf("unexpected stored content: %q", data)
	}
}

func TestSaveUploadStripsClientPath(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	path, err := store.SaveUpload([]byte("x"), "../../etc/passwd")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if strings.Contains(filepath.Base(path), "..") {
		t.Fatalf("stored name kept path components: %q", path)
	}
	if filepath.Dir(path) != store.uploadDir {
		t.Fatalf("upload escaped the upload dir: %q", path)
	}
}

func TestReadAudioNotFound(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if _, err := store.ReadAudio("never-written.mp3"); !errors.Is(err, ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
}

func TestReadAudioRejectsTraversal(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	for _, name := range []string{"", "../outside.mp3", "a/b.mp3"} {
		if _, err := store.ReadAudio(name); !errors.Is(err, ErrAudioNotFound) {
			t.Fatalf("expected ErrAudioNotFound for %q, got %v", name, err)
		}
	}
}

func TestReadAudioRoundtrip(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := os.WriteFile(filepath.Join(store.AudioDir(), "clip.mp3"), []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	data, err := store.ReadAudio("clip.mp3")
	if err != nil {
		t.Fatalf("ReadAudio failed: %v", err)
	}
	if string(data) != "ID3" {
		t.Fatalf("unexpected audio content: %q", data)
	}
}
