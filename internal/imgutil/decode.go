package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
)

// ValidationError indicates the upload was rejected before any decode attempt.
type ValidationError struct {
	ContentType string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid content type %q: file must be an image", e.ContentType)
}

// DecodeError indicates the bytes did not yield a valid, non-empty pixel matrix.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeReceiptImage validates the declared content type and decodes the
// uploaded bytes into an image. The content-type check is deliberately cheap
// and happens before any decode work.
func DecodeReceiptImage(data []byte, contentType string) (image.Image, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &ValidationError{ContentType: contentType}
	}
	if len(data) == 0 {
		return nil, &DecodeError{Err: errors.New("empty image data")}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &DecodeError{Err: errors.New("decoded image is empty")}
	}
	return img, nil
}
