// Package expense persists parsed receipts as expense records and computes
// spending summaries over them.
package expense

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MeKo-Tech/receiptly/internal/extract"
	"github.com/MeKo-Tech/receiptly/internal/pipeline"
)

// Expense is one stored expense record. Date keeps the raw extracted string;
// calendar validation is out of scope for the parser and is deferred to
// consumers that need real dates.
type Expense struct {
	ID          string             `json:"id"`
	Amount      float64            `json:"amount"`
	Description string             `json:"description"`
	Category    extract.Category   `json:"category"`
	Date        string             `json:"date,omitempty"`
	Merchant    string             `json:"merchant"`
	Items       []extract.LineItem `json:"items,omitempty"`
	Source      string             `json:"source"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SourceReceiptOCR marks expenses created from a parsed receipt upload.
const SourceReceiptOCR = "receipt_ocr"

// ErrNoAmount is returned when a parsed receipt carries no extractable
// amount and therefore cannot become an expense.
var ErrNoAmount = errors.New("could not extract amount from receipt")

// FromReceipt builds an expense record from a successfully parsed receipt.
func FromReceipt(r *pipeline.ParsedReceipt) (*Expense, error) {
	if r == nil || r.Amount == nil {
		return nil, ErrNoAmount
	}
	category := r.Category
	if !extract.ValidCategory(category) {
		category = extract.CategoryOther
	}
	return &Expense{
		ID:          uuid.NewString(),
		Amount:      *r.Amount,
		Description: r.Description,
		Category:    category,
		Date:        r.Date,
		Merchant:    r.Merchant,
		Items:       r.Items,
		Source:      SourceReceiptOCR,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Validate checks record fields before persisting.
func (e *Expense) Validate() error {
	if e.ID == "" {
		return errors.New("expense id is empty")
	}
	if e.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive, got %v", e.Amount)
	}
	if e.Description == "" {
		return errors.New("expense description is empty")
	}
	if !extract.ValidCategory(e.Category) {
		return fmt.Errorf("invalid expense category %q", e.Category)
	}
	return nil
}
