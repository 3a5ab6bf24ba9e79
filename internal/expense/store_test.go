package expense

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/receiptly/internal/extract"
	"github.com/MeKo-Tech/receiptly/internal/pipeline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "expenses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testExpense(id string, amount float64, category extract.Category, date string) *Expense {
	return &Expense{
		ID:          id,
		Amount:      amount,
		Description: "Receipt from somewhere",
		Category:    category,
		Date:        date,
		Merchant:    "somewhere",
		Source:      SourceReceiptOCR,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := openTestStore(t)

	e := testExpense("e1", 12.34, extract.CategoryFood, "2024-01-15")
	require.NoError(t, s.Save(e))

	got, err := s.Get("e1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, e.Amount, got.Amount)
	assert.Equal(t, e.Category, got.Category)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		name string
		e    *Expense
	}{
		{"empty id", testExpense("", 5, extract.CategoryFood, "")},
		{"non-positive amount", testExpense("x", 0, extract.CategoryFood, "")},
		{"bad category", testExpense("x", 5, extract.Category("groceries"), "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, s.Save(tt.e))
		})
	}
}

func TestStore_ListFilters(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save(testExpense("a", 10, extract.CategoryFood, "2024-01-15")))
	require.NoError(t, s.Save(testExpense("b", 20, extract.CategoryTransport, "2024-02-02")))
	require.NoError(t, s.Save(testExpense("c", 30, extract.CategoryFood, "2023-12-31")))

	all, err := s.List(Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	food, err := s.List(Filter{Category: extract.CategoryFood})
	require.NoError(t, err)
	assert.Len(t, food, 2)

	y2024, err := s.List(Filter{YearPrefix: "2024"})
	require.NoError(t, err)
	assert.Len(t, y2024, 2)
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save(testExpense("a", 10, extract.CategoryFood, "")))
	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("a"), "double delete is not an error")

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFromReceipt(t *testing.T) {
	amount := 6.49
	r := &pipeline.ParsedReceipt{
		Amount:      &amount,
		Date:        "01/15/2024",
		Merchant:    "Walmart Supercenter",
		Category:    extract.CategoryShopping,
		Description: "Receipt from Walmart Supercenter",
		Items:       []extract.LineItem{{Name: "Milk", Price: 3.99}},
	}

	e, err := FromReceipt(r)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 6.49, e.Amount)
	assert.Equal(t, SourceReceiptOCR, e.Source)
	assert.NoError(t, e.Validate())
}

func TestFromReceipt_NoAmount(t *testing.T) {
	_, err := FromReceipt(&pipeline.ParsedReceipt{Merchant: "x"})
	assert.ErrorIs(t, err, ErrNoAmount)

	_, err = FromReceipt(nil)
	assert.ErrorIs(t, err, ErrNoAmount)
}
