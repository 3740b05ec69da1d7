package services

import (
	"context"
	"fmt"
	"time"

	htgotts "github.com/hegedustibor/htgo-tts"
)

// Synthesizer converts text plus a language code into an mp3 artifact in the
// audio directory, returning the artifact name. Empty text yields an empty
// name and no error: callers treat that as "no audio available".
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) (string, error)
}

// GoogleSynthesizer produces speech through the Google Translate TTS service.
// Each call writes a new artifact; identical text is never deduplicated.
type GoogleSynthesizer struct {
	audioDir string
	timeout  time.Duration
}

// NewGoogleSynthesizer creates a synthesizer writing into audioDir. A zero
// timeout leaves the external call unbounded.
func NewGoogleSynthesizer(audioDir string, timeout time.Duration) *GoogleSynthesizer {
	return &GoogleSynthesizer{audioDir: audioDir, timeout: timeout}
}

// Synthesize generates an mp3 for text in the voice mapped from lang.
// Unsupported codes fall back to the English voice rather than failing.
func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, lang string) (string, error) {
	if text == "" {
		return "", nil
	}

	speech := htgotts.Speech{
		Folder:   s.audioDir,
		Language: voiceFor(lang),
	}
	base := randomHex()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// The library call has no context support; run it on its own goroutine
	// so a stalled synthesis request cannot hold the caller past its
	// deadline.
	done := make(chan error, 1)
	go func() {
		_, err := speech.CreateSpeechFile(text, base)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("speech synthesis failed: %w", err)
		}
	case <-ctx.Done():
		return "", fmt.Errorf("speech synthesis timed out: %w", ctx.Err())
	}

	return base + ".mp3", nil
}
