package recognizer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os/exec"
	"strings"
)

// Config holds settings for the Tesseract-backed recognizer.
type Config struct {
	Binary   string // tesseract executable name or path
	Language string // tesseract language code, e.g. "eng"
	PSM      string // page segmentation mode; receipts read best as a single block
}

// DefaultConfig returns settings suited to single-column receipt photos.
func DefaultConfig() Config {
	return Config{
		Binary:   "tesseract",
		Language: "eng",
		PSM:      "6",
	}
}

// Tesseract shells out to the tesseract binary for recognition. The binary
// is resolved at call time, not construction, so a missing installation
// surfaces as a RecognitionError on the affected request only.
type Tesseract struct {
	cfg Config
}

// NewTesseract creates a Tesseract recognizer with the given configuration.
func NewTesseract(cfg Config) *Tesseract {
	if cfg.Binary == "" {
		cfg.Binary = DefaultConfig().Binary
	}
	return &Tesseract{cfg: cfg}
}

// Recognize encodes the image as PNG, pipes it through tesseract and returns
// the recognized multi-line text.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if img == nil {
		return "", &RecognitionError{Engine: t.cfg.Binary, Err: errors.New("input image is nil")}
	}

	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return "", &RecognitionError{Engine: t.cfg.Binary, Err: err}
	}

	cmd := exec.CommandContext(ctx, t.cfg.Binary, t.args()...) //nolint:gosec // G204: binary comes from trusted configuration
	cmd.Stdin = &in
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errors.New(msg)
		}
		return "", &RecognitionError{Engine: t.cfg.Binary, Err: err}
	}
	return NormalizeText(out.String()), nil
}

func (t *Tesseract) args() []string {
	args := []string{"stdin", "stdout"}
	if t.cfg.Language != "" {
		args = append(args, "-l", t.cfg.Language)
	}
	if t.cfg.PSM != "" {
		args = append(args, "--psm", t.cfg.PSM)
	}
	return args
}
