package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Engine runs optical character recognition for one language.
type Engine interface {
	// Recognize extracts text fragments from the image at imagePath, in
	// reading order.
	Recognize(ctx context.Context, imagePath string) ([]string, error)
}

// tesseractEngine wraps a gosseract client bound to one language. A gosseract
// client is not safe for concurrent use, so calls are serialized per engine.
type tesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractEngine creates a recognition engine for the given Tesseract
// language name (e.g. "eng", "hin"). Loading traineddata can take seconds.
func NewTesseractEngine(tessLang string) (Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(tessLang); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language %q: %w", tessLang, err)
	}

	// PSM 6 = assume a single uniform block of text
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &tesseractEngine{client: client}, nil
}

// Recognize extracts text from an image file. The returned fragments are the
// non-empty lines of Tesseract's output, trimmed.
func (e *tesseractEngine) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Verify file exists
	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("image file not found: %s", imagePath)
	}

	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImage(absPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	var fragments []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fragments = append(fragments, line)
		}
	}
	return fragments, nil
}

// Close releases the underlying Tesseract resources.
func (e *tesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
