package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/receiptly/internal/expense"
	"github.com/MeKo-Tech/receiptly/internal/pipeline"
)

// parserInterface defines what the server needs from the parsing pipeline.
type parserInterface interface {
	Parse(ctx context.Context, data []byte, contentType string) pipeline.Result
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	parser      parserInterface
	store       *expense.Store
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	CORSOrigin      string
	MaxUploadMB     int64
	TimeoutSec      int
	PipelineConfig  pipeline.Config
	StorePath       string

	RateLimitEnabled  bool
	RequestsPerMinute int
	MaxRequestsPerDay int
	MaxDataPerDay     int64
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ParseResponse wraps a parse result for the HTTP API.
type ParseResponse struct {
	Success bool                    `json:"success"`
	Receipt *pipeline.ParsedReceipt `json:"receipt,omitempty"`
	RawText string                  `json:"raw_text,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// SaveResponse reports the outcome of a parse-and-save request.
type SaveResponse struct {
	Success bool                    `json:"success"`
	Expense *expense.Expense        `json:"expense,omitempty"`
	Receipt *pipeline.ParsedReceipt `json:"receipt,omitempty"`
	RawText string                  `json:"raw_text,omitempty"`
	Message string                  `json:"message,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// ExpensesResponse lists stored expenses.
type ExpensesResponse struct {
	Expenses []*expense.Expense `json:"expenses"`
	Count    int                `json:"count"`
}

// NewServer creates a server with a pipeline built from config and an
// expense store opened at the configured path.
func NewServer(config Config) (*Server, error) {
	cfg := config.PipelineConfig

	pl, err := pipeline.NewBuilder().
		WithPreprocessing(cfg.Preprocess).
		WithRecognizerBinary(cfg.Recognizer.Binary).
		WithRecognizerLanguage(cfg.Recognizer.Language).
		WithRecognizerPSM(cfg.Recognizer.PSM).
		Build()
	if err != nil {
		return nil, err
	}

	store, err := expense.OpenStore(config.StorePath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		parser:      pl,
		store:       store,
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
	}
	if config.RateLimitEnabled {
		s.rateLimiter = NewRateLimiter(config.RequestsPerMinute, config.MaxRequestsPerDay, config.MaxDataPerDay)
	}
	return s, nil
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/receipts/parse", s.corsMiddleware(s.rateLimitMiddleware(s.parseReceiptHandler)))
	mux.HandleFunc("/receipts/save", s.corsMiddleware(s.rateLimitMiddleware(s.saveReceiptHandler)))
	mux.HandleFunc("/expenses", s.corsMiddleware(s.expensesHandler))
	mux.HandleFunc("/expenses/", s.corsMiddleware(s.expenseByIDHandler))
	mux.HandleFunc("/analytics/monthly", s.corsMiddleware(s.analyticsMonthlyHandler))
	mux.HandleFunc("/analytics/categories", s.corsMiddleware(s.analyticsCategoriesHandler))
	mux.HandleFunc("/ws/parse", s.parseWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
