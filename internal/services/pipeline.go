package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// PlaceholderText is substituted when recognition finds no readable text.
// It is legitimate content for synthesis, not an error.
const PlaceholderText = "No readable text found."

// Result is the outcome of one upload run.
type Result struct {
	Text      string
	AudioName string // empty when no audio was produced
}

// Pipeline ties together upload persistence, recognition, and speech
// synthesis. It is the single entry point for the OCR flow; every stage
// failure is logged here and wrapped as a StageError for the handler boundary.
type Pipeline struct {
	store      *FileStore
	pool       *EnginePool
	synth      Synthesizer
	archive    *ArchiveService // optional, nil when S3 is not configured
	ocrTimeout time.Duration
	logger     zerolog.Logger
}

// NewPipeline wires the pipeline dependencies. archive may be nil.
func NewPipeline(store *FileStore, pool *EnginePool, synth Synthesizer, archive *ArchiveService, ocrTimeout time.Duration, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		store:      store,
		pool:       pool,
		synth:      synth,
		archive:    archive,
		ocrTimeout: ocrTimeout,
		logger:     logger,
	}
}

// ProcessUpload runs the full upload → OCR → synthesis flow. The language is
// validated before any side effect; an unsupported code persists nothing,
// constructs no engine, and synthesizes nothing.
func (p *Pipeline) ProcessUpload(ctx context.Context, data []byte, filename, lang string) (*Result, error) {
	if !IsSupportedLanguage(lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	path, err := p.store.SaveUpload(data, filename)
	if err != nil {
		p.logger.Error().Err(err).Str("filename", filename).Msg("failed to persist upload")
		return nil, stageErr(StageStorage, err)
	}
	if p.archive != nil {
		go p.archive.StoreUpload(filepath.Base(path), data)
	}

	engine, err := p.pool.Get(lang)
	if err != nil {
		p.logger.Error().Err(err).Str("language", lang).Msg("failed to acquire recognition engine")
		return nil, stageErr(StageEngineInit, err)
	}

	fragments, err := p.recognize(ctx, engine, path)
	if err != nil {
		p.logger.Error().Err(err).Str("language", lang).Str("path", path).Msg("recognition failed")
		return nil, stageErr(StageRecognition, err)
	}

	text := strings.TrimSpace(strings.Join(fragments, " "))
	if text == "" {
		text = PlaceholderText
	}

	audioName, err := p.synth.Synthesize(ctx, text, lang)
	if err != nil {
		p.logger.Error().Err(err).Str("language", lang).Msg("synthesis failed")
		return nil, stageErr(StageSynthesis, err)
	}
	if p.archive != nil && audioName != "" {
		name := audioName
		go func() {
			if audio, err := p.store.ReadAudio(name); err == nil {
				p.archive.StoreAudio(name, audio)
			}
		}()
	}

	return &Result{Text: text, AudioName: audioName}, nil
}

// recognize runs OCR under the configured timeout. Tesseract calls cannot be
// cancelled mid-run, so a timed-out recognition keeps its goroutine (and that
// engine's lock) until the underlying call returns.
func (p *Pipeline) recognize(ctx context.Context, engine Engine, path string) ([]string, error) {
	if p.ocrTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.ocrTimeout)
		defer cancel()
	}

	type recognized struct {
		fragments []string
		err       error
	}
	done := make(chan recognized, 1)
	go func() {
		fragments, err := engine.Recognize(ctx, path)
		done <- recognized{fragments, err}
	}()

	select {
	case r := <-done:
		return r.fragments, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("recognition timed out: %w", ctx.Err())
	}
}
