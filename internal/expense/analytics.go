package expense

import (
	"fmt"

	"github.com/MeKo-Tech/receiptly/internal/extract"
)

// Bucket aggregates a group of expenses.
type Bucket struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// MonthlySummary is the per-month spending breakdown for one year.
type MonthlySummary struct {
	Year              int               `json:"year"`
	Months            map[string]Bucket `json:"monthly_data"`
	TotalExpenses     float64           `json:"total_expenses"`
	TotalTransactions int               `json:"total_transactions"`
}

// CategorySummary is the spending breakdown by category.
type CategorySummary struct {
	Categories map[extract.Category]Bucket `json:"categories"`
	Total      float64                     `json:"total"`
}

// Monthly computes the per-month summary for expenses whose extracted date
// begins with the given year. Dates are raw strings; only records with a
// recognizable "YYYY-MM" or "YYYY/MM" prefix contribute.
func (s *Store) Monthly(year int) (*MonthlySummary, error) {
	prefix := fmt.Sprintf("%04d", year)
	expenses, err := s.List(Filter{YearPrefix: prefix})
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{Year: year, Months: make(map[string]Bucket)}
	for _, e := range expenses {
		if len(e.Date) < 7 {
			continue
		}
		month := e.Date[:4] + "-" + e.Date[5:7]
		b := summary.Months[month]
		b.Total += e.Amount
		b.Count++
		summary.Months[month] = b
		summary.TotalExpenses += e.Amount
		summary.TotalTransactions++
	}
	return summary, nil
}

// ByCategory computes totals per category over all stored expenses.
func (s *Store) ByCategory() (*CategorySummary, error) {
	expenses, err := s.List(Filter{})
	if err != nil {
		return nil, err
	}

	summary := &CategorySummary{Categories: make(map[extract.Category]Bucket)}
	for _, e := range expenses {
		b := summary.Categories[e.Category]
		b.Total += e.Amount
		b.Count++
		summary.Categories[e.Category] = b
		summary.Total += e.Amount
	}
	return summary, nil
}
