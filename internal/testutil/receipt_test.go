package testutil

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptImage_Dimensions(t *testing.T) {
	img := GenerateReceiptImage(DefaultReceiptImageConfig())
	require.NotNil(t, img)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestReceiptPNG_DecodesBack(t *testing.T) {
	data := ReceiptPNG(t, "Corner Cafe", "Espresso 2.20")
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
}
