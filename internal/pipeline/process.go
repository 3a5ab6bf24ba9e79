package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/receiptly/internal/extract"
	"github.com/MeKo-Tech/receiptly/internal/imgutil"
	"github.com/MeKo-Tech/receiptly/internal/recognizer"
)

// Parse runs the full pipeline on an uploaded byte buffer. Decode and
// recognition failures abort with a failure result; once recognized text
// exists the parse always succeeds, with extraction gaps surfacing as
// absent or default fields rather than errors.
func (p *Pipeline) Parse(ctx context.Context, data []byte, contentType string) Result {
	if p == nil || p.recognizer == nil {
		return failure(errors.New("pipeline not initialized"))
	}

	start := time.Now()

	img, err := imgutil.DecodeReceiptImage(data, contentType)
	if err != nil {
		return failure(err)
	}

	if p.cfg.Preprocess {
		img = imgutil.Preprocess(img)
	}

	text, err := p.recognizer.Recognize(ctx, img)
	if err != nil {
		var rErr *recognizer.RecognitionError
		if !errors.As(err, &rErr) {
			err = &recognizer.RecognitionError{Engine: "unknown", Err: err}
		}
		return failure(err)
	}
	text = recognizer.NormalizeText(text)

	receipt := ParseText(text)
	slog.Debug("receipt parsed",
		"merchant", receipt.Merchant,
		"category", receipt.Category,
		"items", len(receipt.Items),
		"has_amount", receipt.Amount != nil,
		"duration_ms", time.Since(start).Milliseconds())

	return success(receipt, text)
}

// ParseText runs the five extractors independently over recognized text and
// assembles the record. Only the category classifier consumes another
// extractor's output (the merchant).
func ParseText(text string) *ParsedReceipt {
	merchant := extract.Merchant(text)

	description := "Receipt expense"
	if merchant != extract.UnknownMerchant {
		description = fmt.Sprintf("Receipt from %s", merchant)
	}

	return &ParsedReceipt{
		Amount:      extract.Amount(text),
		Date:        extract.Date(text),
		Merchant:    merchant,
		Items:       extract.Items(text),
		Category:    extract.Classify(merchant),
		Description: description,
	}
}
