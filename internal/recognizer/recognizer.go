// Package recognizer defines the text-recognition boundary of the receipt
// pipeline. Recognition itself is an external capability: engines are
// pluggable, non-deterministic across invocations, and everything downstream
// must treat their output as untrusted.
package recognizer

import (
	"context"
	"fmt"
	"image"
)

// TextRecognizer converts a pixel matrix into a plain multi-line string.
type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// RecognitionError indicates the recognition engine failed. It aborts the
// pipeline; extraction gaps downstream of a successful recognition never do.
type RecognitionError struct {
	Engine string
	Err    error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("text recognition failed (%s): %v", e.Engine, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// Func adapts a plain function to the TextRecognizer interface.
type Func func(ctx context.Context, img image.Image) (string, error)

func (f Func) Recognize(ctx context.Context, img image.Image) (string, error) {
	return f(ctx, img)
}
