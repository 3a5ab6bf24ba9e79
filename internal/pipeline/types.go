package pipeline

import (
	"github.com/MeKo-Tech/receiptly/internal/extract"
)

// ParsedReceipt is the structured expense record assembled from one receipt
// photo. Amount is nil when no plausible monetary candidate was found; Date
// is the raw matched substring ("" when absent); Merchant always carries a
// value, falling back to the extractor's sentinel.
type ParsedReceipt struct {
	Amount      *float64           `json:"amount,omitempty"`
	Date        string             `json:"date,omitempty"`
	Merchant    string             `json:"merchant"`
	Items       []extract.LineItem `json:"items"`
	Category    extract.Category   `json:"category"`
	Description string             `json:"description"`
}

// Result is the outcome of one pipeline invocation. Exactly one of the two
// arms is populated: a successful parse carries the receipt plus the raw
// recognized text for audit; a failure carries the aborting error.
type Result struct {
	Success bool           `json:"success"`
	Receipt *ParsedReceipt `json:"receipt,omitempty"`
	RawText string         `json:"raw_text,omitempty"`
	Error   string         `json:"error,omitempty"`

	// Err holds the typed failure cause for errors.As at the boundary.
	Err error `json:"-"`
}

func success(receipt *ParsedReceipt, rawText string) Result {
	return Result{Success: true, Receipt: receipt, RawText: rawText}
}

func failure(err error) Result {
	return Result{Success: false, Error: err.Error(), Err: err}
}
