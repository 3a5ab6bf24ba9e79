package imgutil

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/receiptly/internal/mempool"
)

// gaussianKernel is a normalized 5x5 Gaussian smoothing kernel (sigma ~= 1.0).
var gaussianKernel = [5][5]float64{
	{1, 4, 7, 4, 1},
	{4, 16, 26, 16, 4},
	{7, 26, 41, 26, 7},
	{4, 16, 26, 16, 4},
	{1, 4, 7, 4, 1},
}

const gaussianKernelSum = 273.0

// Preprocess prepares a receipt photo for text recognition: grayscale
// conversion, 5x5 Gaussian smoothing to suppress sensor noise, then global
// Otsu binarization to separate ink from background. It never fails; on a
// degenerate input the original image is returned unchanged so the pipeline
// can continue in degraded mode.
func Preprocess(img image.Image) image.Image {
	if img == nil {
		return img
	}
	b := img.Bounds()
	if b.Dx() < 5 || b.Dy() < 5 {
		return img
	}

	// The gray and blurred planes are intermediates; their pixel buffers go
	// back to the pool once the binarized copy exists.
	gray := toGray(img)
	blurred := gaussianBlur(gray)
	threshold := otsuThreshold(blurred)
	out := binarize(blurred, threshold)
	mempool.PutBytes(gray.Pix)
	mempool.PutBytes(blurred.Pix)
	return out
}

// pooledGray builds a Gray image over a pooled pixel buffer.
func pooledGray(w, h int) *image.Gray {
	return &image.Gray{
		Pix:    mempool.GetBytes(w * h),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// toGray converts any image to single-channel intensity.
func toGray(img image.Image) *image.Gray {
	nrgba := imaging.Grayscale(img)
	b := nrgba.Bounds()
	gray := pooledGray(b.Dx(), b.Dy())
	for y := range b.Dy() {
		for x := range b.Dx() {
			// Grayscale output has R == G == B.
			gray.Pix[y*gray.Stride+x] = nrgba.Pix[y*nrgba.Stride+x*4]
		}
	}
	return gray
}

// gaussianBlur applies the 5x5 kernel with clamped borders.
func gaussianBlur(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := pooledGray(w, h)

	for y := range h {
		for x := range w {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sy := clamp(y+ky, 0, h-1)
					sx := clamp(x+kx, 0, w-1)
					sum += float64(src.Pix[sy*src.Stride+sx]) * gaussianKernel[ky+2][kx+2]
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum/gaussianKernelSum + 0.5)
		}
	}
	return dst
}

// otsuThreshold picks the intensity cutoff maximizing between-class variance.
func otsuThreshold(img *image.Gray) uint8 {
	var hist [256]int
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	for y := range b.Dy() {
		for x := range b.Dx() {
			hist[img.Pix[y*img.Stride+x]]++
		}
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}

	var sumBack, weightBack float64
	var maxVariance float64
	var threshold uint8
	for t := range 256 {
		weightBack += float64(hist[t])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / weightBack
		meanFore := (sumAll - sumBack) / weightFore
		variance := weightBack * weightFore * (meanBack - meanFore) * (meanBack - meanFore)
		if variance > maxVariance {
			maxVariance = variance
			threshold = uint8(t)
		}
	}
	return threshold
}

func binarize(src *image.Gray, threshold uint8) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		for x := range b.Dx() {
			if src.Pix[y*src.Stride+x] > threshold {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
