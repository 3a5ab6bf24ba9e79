// Package pipeline orchestrates receipt parsing: decode, preprocess,
// recognize, then five independent field extractions over the same text.
// Each invocation is stateless and self-contained, so distinct uploads can
// run concurrently without synchronization.
package pipeline

import (
	"errors"

	"github.com/MeKo-Tech/receiptly/internal/recognizer"
)

// Config holds configuration for the parsing pipeline.
type Config struct {
	// Preprocess toggles grayscale/denoise/binarize before recognition.
	Preprocess bool
	Recognizer recognizer.Config
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Preprocess: true,
		Recognizer: recognizer.DefaultConfig(),
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg Config
	rec recognizer.TextRecognizer
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithPreprocessing toggles the image preprocessing stage.
func (b *Builder) WithPreprocessing(enabled bool) *Builder {
	b.cfg.Preprocess = enabled
	return b
}

// WithRecognizerBinary overrides the tesseract binary path.
func (b *Builder) WithRecognizerBinary(path string) *Builder {
	if path != "" {
		b.cfg.Recognizer.Binary = path
	}
	return b
}

// WithRecognizerLanguage sets the recognition language code.
func (b *Builder) WithRecognizerLanguage(lang string) *Builder {
	if lang != "" {
		b.cfg.Recognizer.Language = lang
	}
	return b
}

// WithRecognizerPSM sets the tesseract page segmentation mode.
func (b *Builder) WithRecognizerPSM(psm string) *Builder {
	if psm != "" {
		b.cfg.Recognizer.PSM = psm
	}
	return b
}

// WithRecognizer injects a text recognition engine directly, overriding the
// configured Tesseract engine. Used by tests to decouple the extraction
// heuristics from real, non-deterministic recognition.
func (b *Builder) WithRecognizer(rec recognizer.TextRecognizer) *Builder {
	b.rec = rec
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Build initializes the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	rec := b.rec
	if rec == nil {
		if b.cfg.Recognizer.Binary == "" {
			return nil, errors.New("recognizer binary is empty")
		}
		rec = recognizer.NewTesseract(b.cfg.Recognizer)
	}
	return &Pipeline{cfg: b.cfg, recognizer: rec}, nil
}

// Pipeline wires the decoder, preprocessor, recognizer and extractors into
// one total function from bytes to a parse result.
type Pipeline struct {
	cfg        Config
	recognizer recognizer.TextRecognizer
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }
