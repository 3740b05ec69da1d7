package services

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// EngineFactory constructs a recognition engine for a Tesseract language name.
// Construction is expensive (loads traineddata), so the pool caches results.
type EngineFactory func(tessLang string) (Engine, error)

// EnginePool lazily constructs and caches one recognition engine per supported
// language code. Engines live for the lifetime of the process; the cache is
// bounded in practice by the size of the language set.
type EnginePool struct {
	factory EngineFactory
	logger  zerolog.Logger

	mu      sync.RWMutex
	engines map[string]Engine
	group   singleflight.Group
}

// NewEnginePool creates an empty pool. No engines are constructed until the
// first Get for their language.
func NewEnginePool(factory EngineFactory, logger zerolog.Logger) *EnginePool {
	return &EnginePool{
		factory: factory,
		logger:  logger,
		engines: make(map[string]Engine),
	}
}

// Get returns the cached engine for lang, constructing it on first use.
// Concurrent first requests for the same language are collapsed so the
// factory runs at most once per code.
func (p *EnginePool) Get(lang string) (Engine, error) {
	tessLang, ok := tesseractLangs[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	p.mu.RLock()
	engine, ok := p.engines[lang]
	p.mu.RUnlock()
	if ok {
		return engine, nil
	}

	v, err, _ := p.group.Do(lang, func() (interface{}, error) {
		// Re-check under the group: a previous flight may have populated
		// the cache between our read and this call.
		p.mu.RLock()
		engine, ok := p.engines[lang]
		p.mu.RUnlock()
		if ok {
			return engine, nil
		}

		p.logger.Info().Str("language", lang).Msg("initializing recognition engine")
		engine, err := p.factory(tessLang)
		if err != nil {
			return nil, fmt.Errorf("initialize engine for %q: %w", lang, err)
		}

		p.mu.Lock()
		p.engines[lang] = engine
		p.mu.Unlock()
		return engine, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Engine), nil
}

// Close releases every cached engine.
func (p *EnginePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for lang, engine := range p.engines {
		if closer, ok := engine.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close engine for %q: %w", lang, err)
			}
		}
		delete(p.engines, lang)
	}
	return firstErr
}
