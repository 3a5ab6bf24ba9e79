package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MeKo-Tech/receiptly/internal/expense"
	"github.com/MeKo-Tech/receiptly/internal/extract"
)

// expensesHandler lists stored expenses, optionally filtered by category
// and year.
func (s *Server) expensesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var filter expense.Filter
	if c := r.URL.Query().Get("category"); c != "" {
		cat := extract.Category(c)
		if !extract.ValidCategory(cat) {
			writeErrorResponse(w, "invalid category: "+c, http.StatusBadRequest)
			return
		}
		filter.Category = cat
	}
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < 1000 || year > 9999 {
			writeErrorResponse(w, "invalid year: "+y, http.StatusBadRequest)
			return
		}
		filter.YearPrefix = y
	}

	expenses, err := s.store.List(filter)
	if err != nil {
		slog.Error("Failed to list expenses", "error", err)
		writeErrorResponse(w, "failed to list expenses", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ExpensesResponse{Expenses: expenses, Count: len(expenses)})
}

// expenseByIDHandler serves GET and DELETE for a single expense addressed
// by /expenses/{id}.
func (s *Server) expenseByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/expenses/")
	if id == "" || strings.Contains(id, "/") {
		writeErrorResponse(w, "invalid expense ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		exp, err := s.store.Get(id)
		if err != nil {
			slog.Error("Failed to load expense", "id", id, "error", err)
			writeErrorResponse(w, "failed to load expense", http.StatusInternalServerError)
			return
		}
		if exp == nil {
			writeErrorResponse(w, "expense not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, exp)

	case http.MethodDelete:
		if err := s.store.Delete(id); err != nil {
			slog.Error("Failed to delete expense", "id", id, "error", err)
			writeErrorResponse(w, "failed to delete expense", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// analyticsMonthlyHandler reports the per-month spending summary for a year.
// Defaults to the current year when ?year= is absent.
func (s *Server) analyticsMonthlyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 1000 || parsed > 9999 {
			writeErrorResponse(w, "invalid year: "+y, http.StatusBadRequest)
			return
		}
		year = parsed
	}

	summary, err := s.store.Monthly(year)
	if err != nil {
		slog.Error("Failed to compute monthly summary", "error", err)
		writeErrorResponse(w, "failed to compute summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// analyticsCategoriesHandler reports spending totals grouped by category.
func (s *Server) analyticsCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := s.store.ByCategory()
	if err != nil {
		slog.Error("Failed to compute category summary", "error", err)
		writeErrorResponse(w, "failed to compute summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
