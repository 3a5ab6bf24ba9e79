package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeReceiptImage_ValidPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := range 20 {
		for x := range 40 {
			src.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	img, err := DecodeReceiptImage(encodePNG(t, src), "image/png")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestDecodeReceiptImage_RejectsNonImageContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
	}{
		{"plain text", "text/plain"},
		{"json", "application/json"},
		{"empty", ""},
		{"pdf", "application/pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeReceiptImage([]byte("not checked"), tt.contentType)
			assert.Nil(t, img)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.contentType, vErr.ContentType)
		})
	}
}

func TestDecodeReceiptImage_UnreadableBytes(t *testing.T) {
	img, err := DecodeReceiptImage([]byte("definitely not an image"), "image/png")
	assert.Nil(t, img)

	var dErr *DecodeError
	require.ErrorAs(t, err, &dErr)
}

func TestDecodeReceiptImage_EmptyBuffer(t *testing.T) {
	img, err := DecodeReceiptImage(nil, "image/jpeg")
	assert.Nil(t, img)

	var dErr *DecodeError
	require.ErrorAs(t, err, &dErr)
}
