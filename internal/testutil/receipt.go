// Package testutil provides helpers for rendering synthetic receipt images
// used across pipeline and server tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ReceiptImageConfig holds configuration for generating receipt test images.
type ReceiptImageConfig struct {
	Lines      []string
	Width      int
	Background color.Color
	Foreground color.Color
}

// DefaultReceiptImageConfig returns a small white receipt with dark text.
func DefaultReceiptImageConfig() ReceiptImageConfig {
	return ReceiptImageConfig{
		Lines: []string{
			"Walmart Supercenter",
			"01/15/2024",
			"Milk 3.99",
			"Bread 2.50",
			"TOTAL $6.49",
		},
		Width:      320,
		Background: color.White,
		Foreground: color.Black,
	}
}

// GenerateReceiptImage renders the configured lines onto a plain background,
// one line per row, mimicking a photographed till receipt.
func GenerateReceiptImage(config ReceiptImageConfig) *image.RGBA {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 4
	height := lineHeight*(len(config.Lines)+2) + 8

	img := image.NewRGBA(image.Rect(0, 0, config.Width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{config.Background}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{config.Foreground},
		Face: face,
	}
	for i, line := range config.Lines {
		drawer.Dot = fixed.P(8, lineHeight*(i+1)+8)
		drawer.DrawString(line)
	}
	return img
}

// ReceiptPNG renders receipt lines and encodes them as PNG bytes.
func ReceiptPNG(t *testing.T, lines ...string) []byte {
	t.Helper()

	config := DefaultReceiptImageConfig()
	if len(lines) > 0 {
		config.Lines = lines
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, GenerateReceiptImage(config)))
	return buf.Bytes()
}
