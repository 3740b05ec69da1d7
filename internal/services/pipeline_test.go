package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// fakeSynth writes a stub mp3 per call so pipeline results are retrievable
// through the file store, mirroring the real adapter's behavior.
type fakeSynth struct {
	dir   string
	fail  bool
	calls int32
	texts []string
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, lang string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.texts = append(f.texts, text)
	if f.fail {
		return "", errors.New("synthesis backend unavailable")
	}
	name := randomHex() + ".mp3"
	if err := os.WriteFile(filepath.Join(f.dir, name), []byte("ID3stub"), 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func newTestPipeline(t *testing.T, engine Engine, factoryErr error) (*Pipeline, *FileStore, *fakeSynth, *int32) {
	t.Helper()
	store := newTestStore(t)

	var constructions int32
	pool := NewEnginePool(func(tessLang string) (Engine, error) {
		atomic.AddInt32(&constructions, 1)
		if factoryErr != nil {
			return nil, factoryErr
		}
		return engine, nil
	}, zerolog.Nop())

	synth := &fakeSynth{dir: store.AudioDir()}
	return NewPipeline(store, pool, synth, nil, 0, zerolog.Nop()), store, synth, &constructions
}

func TestProcessUploadJoinsAndTrimsFragments(t *testing.T) {
	t.Parallel()
	engine := &stubEngine{fragments: []string{"Take two tablets", "after meals"}}
	pipeline, _, synth, _ := newTestPipeline(t, engine, nil)

	result, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "rx.png", "en")
	if err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}
	if result.Text != "Take two tablets after meals" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if result.AudioName == "" {
		t.Fatal("expected audio to be produced for non-empty text")
	}
	if len(synth.texts) != 1 || synth.texts[0] != result.Text {
		t.Fatalf("synthesizer received %v, want the extracted text", synth.texts)
	}
}

func TestProcessUploadSubstitutesPlaceholder(t *testing.T) {
	t.Parallel()
	engine := &stubEngine{} // no fragments recognized
	pipeline, store, synth, _ := newTestPipeline(t, engine, nil)

	result, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "blank.png", "en")
	if err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}
	if result.Text != PlaceholderText {
		t.Fatalf("expected placeholder text, got %q", result.Text)
	}

	// The placeholder is legitimate synthesis input, so audio must exist.
	if result.AudioName == "" {
		t.Fatal("expected audio for the placeholder text")
	}
	if len(synth.texts) != 1 || synth.texts[0] != PlaceholderText {
		t.Fatalf("synthesizer received %v, want the placeholder", synth.texts)
	}
	if _, err := store.ReadAudio(result.AudioName); err != nil {
		t.Fatalf("placeholder audio not retrievable: %v", err)
	}
}

func TestProcessUploadUnsupportedLanguageHasNoSideEffects(t *testing.T) {
	t.Parallel()
	pipeline, store, synth, constructions := newTestPipeline(t, &stubEngine{}, nil)

	_, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "x.png", "xx")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}

	entries, readErr := os.ReadDir(store.uploadDir)
	if readErr != nil {
		t.Fatalf("read upload dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no persisted upload, found %d entries", len(entries))
	}
	if n := atomic.LoadInt32(constructions); n != 0 {
		t.Fatalf("expected no engine construction, got %d", n)
	}
	if n := atomic.LoadInt32(&synth.calls); n != 0 {
		t.Fatalf("expected no synthesis call, got %d", n)
	}
}

func TestProcessUploadWrapsEngineInitFailure(t *testing.T) {
	t.Parallel()
	pipeline, _, _, _ := newTestPipeline(t, nil, errors.New("traineddata missing"))

	_, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "x.png", "bn")
	assertStage(t, err, StageEngineInit, "traineddata missing")
}

func TestProcessUploadWrapsRecognitionFailure(t *testing.T) {
	t.Parallel()
	engine := &stubEngine{err: errors.New("corrupt image")}
	pipeline, _, _, _ := newTestPipeline(t, engine, nil)

	_, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "x.png", "te")
	assertStage(t, err, StageRecognition, "corrupt image")
}

func TestProcessUploadWrapsSynthesisFailure(t *testing.T) {
	t.Parallel()
	engine := &stubEngine{fragments: []string{"hello"}}
	pipeline, _, synth, _ := newTestPipeline(t, engine, nil)
	synth.fail = true

	_, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "x.png", "mr")
	assertStage(t, err, StageSynthesis, "synthesis backend unavailable")
}

func TestProcessUploadProducesDistinctArtifactsPerCall(t *testing.T) {
	t.Parallel()
	engine := &stubEngine{fragments: []string{"same text"}}
	pipeline, store, _, _ := newTestPipeline(t, engine, nil)

	first, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "a.png", "en")
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := pipeline.ProcessUpload(context.Background(), []byte("img"), "a.png", "en")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	// Identical text is never deduplicated: two runs, two artifacts.
	if first.AudioName == second.AudioName {
		t.Fatalf("expected distinct artifact names, both were %q", first.AudioName)
	}
	for _, name := range []string{first.AudioName, second.AudioName} {
		if _, err := store.ReadAudio(name); err != nil {
			t.Fatalf("artifact %q not retrievable: %v", name, err)
		}
	}
}

func assertStage(t *testing.T, err error, stage, msg string) {
	t.Helper()
	var stageError *StageError
	if !errors.As(err, &stageError) {
		t.Fatalf("expected a StageError, got %v", err)
	}
	if stageError.Stage != stage {
		t.Fatalf("expected stage %q, got %q", stage, stageError.Stage)
	}
	if !strings.Contains(stageError.Error(), msg) {
		t.Fatalf("expected error to carry %q, got %q", msg, stageError.Error())
	}
}
