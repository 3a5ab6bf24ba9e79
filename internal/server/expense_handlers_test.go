package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/receiptly/internal/expense"
	"github.com/MeKo-Tech/receiptly/internal/extract"
)

func seedExpense(t *testing.T, s *Server, id string, amount float64, category extract.Category, date string) {
	t.Helper()
	err := s.store.Save(&expense.Expense{
		ID:          id,
		Amount:      amount,
		Description: "seeded",
		Category:    category,
		Date:        date,
		Source:      expense.SourceReceiptOCR,
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestExpensesHandler_ListAll(t *testing.T) {
	s := newTestServer(t, &stubParser{})
	seedExpense(t, s, "a", 10.00, extract.CategoryFood, "2024-01-05")
	seedExpense(t, s, "b", 20.00, extract.CategoryTransport, "2024-02-10")

	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	w := httptest.NewRecorder()
	s.expensesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExpensesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Expenses, 2)
}

func TestExpensesHandler_FilterByCategory(t *testing.T) {
	s := newTestServer(t, &stubParser{})
	seedExpense(t, s, "a", 10.00, extract.CategoryFood, "2024-01-05")
	seedExpense(t, s, "b", 20.00, extract.CategoryTransport, "2024-02-10")

	req := httptest.NewRequest(http.MethodGet, "/expenses?category=food", nil)
	w := httptest.NewRecorder()
	s.expensesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ExpensesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, extract.CategoryFood, resp.Expenses[0].Category)
}

func TestExpensesHandler_InvalidCategory(t *testing.T) {
	s := newTestServer(t, &stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/expenses?category=yachts", nil)
	w := httptest.NewRecorder()
	s.expensesHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpensesHandler_InvalidYear(t *testing.T) {
	s := newTestServer(t, &stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/expenses?year=banana", nil)
	w := httptest.NewRecorder()
	s.expensesHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpenseByIDHandler_GetAndDelete(t *testing.T) {
	s := newTestServer(t, &stubParser{})
	seedExpense(t, s, "exp-1", 12.34, extract.CategoryFood, "2024-01-05")

	req := httptest.NewRequest(http.MethodGet, "/expenses/exp-1", nil)
	w := httptest.NewRecorder()
	s.expenseByIDHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var exp expense.Expense
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exp))
	assert.Equal(t, "exp-1", exp.ID)

	req = httptest.NewRequest(http.MethodDelete, "/expenses/exp-1", nil)
	w = httptest.NewRecorder()
	s.expenseByIDHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := s.store.Get("exp-1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestExpenseByIDHandler_NotFound(t *testing.T) {
	s := newTestServer(t, &stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/expenses/missing", nil)
	w := httptest.NewRecorder()
	s.expenseByIDHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpenseByIDHandler_InvalidID(t *testing.T) {
	s := newTestServer(t, &stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/expenses/", nil)
	w := httptest.NewRecorder()
	s.expenseByIDHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsMonthlyHandler(t *testing.T) {
	s := newTestServer(t, &stubParser{})
	seedExpense(t, s, "a", 10.00, extract.CategoryFood, "2024-01-05")
	seedExpense(t, s, "b", 20.00, extract.CategoryFood, "2024-01-20")
	seedExpense(t, s, "c", 5.00, extract.CategoryTransport, "2024-02-01")

	req := httptest.NewRequest(http.MethodGet, "/analytics/monthly?year=2024", nil)
	w := httptest.NewRecorder()
	s.analyticsMonthlyHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary expense.MonthlySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 3, summary.TotalTransactions)
	assert.InDelta(t, 35.00, summary.TotalExpenses, 0.001)
	assert.InDelta(t, 30.00, summary.Months["2024-01"].Total, 0.001)
}

func TestAnalyticsMonthlyHandler_InvalidYear(t *testing.T) {
	s := newTestServer(t, &stubParser{})

	req := httptest.NewRequest(http.MethodGet, "/analytics/monthly?year=notayear", nil)
	w := httptest.NewRecorder()
	s.analyticsMonthlyHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsCategoriesHandler(t *testing.T) {
	s := newTestServer(t, &stubParser{})
	seedExpense(t, s, "a", 10.00, extract.CategoryFood, "2024-01-05")
	seedExpense(t, s, "b", 20.00, extract.CategoryTransport, "2024-02-10")

	req := httptest.NewRequest(http.MethodGet, "/analytics/categories", nil)
	w := httptest.NewRecorder()
	s.analyticsCategoriesHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var summary expense.CategorySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.InDelta(t, 30.00, summary.Total, 0.001)
	assert.Equal(t, 1, summary.Categories[extract.CategoryFood].Count)
}
