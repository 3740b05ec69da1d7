package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage is returned for language codes outside the
	// supported set. Handlers translate it to a 400.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrAudioNotFound is returned when a requested audio artifact does not
	// exist on disk. Handlers translate it to a 404.
	ErrAudioNotFound = errors.New("audio not found")
)

// Pipeline stages used to tag failures.
const (
	StageStorage     = "storage"
	StageEngineInit  = "engine_init"
	StageRecognition = "recognition"
	StageSynthesis   = "synthesis"
)

// StageError wraps a failure from one pipeline stage. Every stage failure is
// collapsed to a 500 at the handler boundary, carrying the original message.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}
